package x86

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemOperandRendersSizeHintAndAddressing(t *testing.T) {
	base := RBP
	mem := MemOperand{Base: &base, Displacement: -8, SizeHint: 32}
	assert.Equal(t, "DWORD PTR [rbp - 8]", mem.String())
}

func TestMemOperandWithIndexAndScale(t *testing.T) {
	base, index := RAX, RCX
	mem := MemOperand{Base: &base, Index: &index, Scale: 8, SizeHint: 64}
	assert.Equal(t, "QWORD PTR [rax + rcx*8]", mem.String())
}

func TestImmOperandRendersSignedAndUnsigned(t *testing.T) {
	assert.Equal(t, "-1", ImmOperand{Size: Imm32, Signed: true, Value: -1}.String())
	assert.Equal(t, "18446744073709551615", ImmOperand{Size: Imm64, Signed: false, Value: -1}.String())
}

func TestInstructionRendersMnemonicAndOperands(t *testing.T) {
	inst := Instruction{Op: MOV, Operands: []Operand{RegOperand{RAX}, ImmOperand{Size: Imm32, Signed: true, Value: 42}}}
	assert.Equal(t, "mov rax, 42", inst.String())
}

func TestNoOperandInstructionRendersBareMnemonic(t *testing.T) {
	assert.Equal(t, "ret", Instruction{Op: RET}.String())
}

func TestJumpCallReturnPredicates(t *testing.T) {
	assert.True(t, Instruction{Op: JMP}.IsJump())
	assert.True(t, Instruction{Op: JE}.IsJump())
	assert.True(t, Instruction{Op: CALL}.IsCall())
	assert.True(t, Instruction{Op: RET}.IsReturn())
	assert.False(t, Instruction{Op: MOV}.IsJump())
	assert.False(t, Instruction{Op: MOV}.IsCall())
	assert.False(t, Instruction{Op: MOV}.IsReturn())
}

func TestFunctionRendersBlocksInOrder(t *testing.T) {
	fn := Function{
		Name: "add",
		Blocks: []Block{
			{Label: "entry", Instructions: []Instruction{
				{Op: MOV, Operands: []Operand{RegOperand{RAX}, RegOperand{RDI}}},
				{Op: ADD, Operands: []Operand{RegOperand{RAX}, RegOperand{RSI}}},
				{Op: RET},
			}},
		},
	}
	want := "add:\nentry:\n    mov rax, rdi\n    add rax, rsi\n    ret\n"
	assert.Equal(t, want, fn.Render())
}
