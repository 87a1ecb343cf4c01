package x86

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegOperandString(t *testing.T) {
	assert.Equal(t, "rdi", RegOperand{RDI}.String())
	assert.Equal(t, "xmm3", RegOperand{XMM3}.String())
}

func TestLabelOperandString(t *testing.T) {
	assert.Equal(t, ".Lloop_body", LabelOperand{Name: ".Lloop_body"}.String())
}

func TestMemOperandNoSizeHintOmitsPtrPrefix(t *testing.T) {
	base := RSP
	mem := MemOperand{Base: &base, Displacement: 16}
	assert.Equal(t, "[rsp + 16]", mem.String())
}

func TestMemOperandSizeHintKeywords(t *testing.T) {
	base := RBX
	cases := []struct {
		bits int
		want string
	}{
		{8, "BYTE PTR [rbx]"},
		{16, "WORD PTR [rbx]"},
		{32, "DWORD PTR [rbx]"},
		{64, "QWORD PTR [rbx]"},
	}
	for _, c := range cases {
		mem := MemOperand{Base: &base, SizeHint: c.bits}
		assert.Equal(t, c.want, mem.String())
	}
}

func TestMemOperandAbsoluteDisplacementOnly(t *testing.T) {
	mem := MemOperand{Displacement: -32, SizeHint: 64}
	assert.Equal(t, "QWORD PTR [-32]", mem.String())
}

func TestMemOperandIndexDefaultsScaleToOne(t *testing.T) {
	base, index := RSI, RDX
	mem := MemOperand{Base: &base, Index: &index}
	assert.Equal(t, "[rsi + rdx*1]", mem.String())
}

func TestMemOperandFullAddressingMode(t *testing.T) {
	base, index := R8, R9
	mem := MemOperand{Base: &base, Index: &index, Scale: 4, Displacement: -12, SizeHint: 32}
	assert.Equal(t, "DWORD PTR [r8 + r9*4 - 12]", mem.String())
}

func TestImmOperandZeroValue(t *testing.T) {
	assert.Equal(t, "0", ImmOperand{Size: Imm8, Signed: true, Value: 0}.String())
}
