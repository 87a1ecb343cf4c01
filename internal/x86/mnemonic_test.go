package x86

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMnemonicStringRendersLowercase(t *testing.T) {
	assert.Equal(t, "mov", MOV.String())
	assert.Equal(t, "cvttsd2si", CVTTSD2SI.String())
	assert.Equal(t, "syscall", SYSCALL.String())
}

func TestMnemonicIsJumpCoversAllConditionalJumps(t *testing.T) {
	jumps := []Mnemonic{JMP, JE, JNE, JL, JLE, JG, JGE, JB, JBE, JA, JAE, JS, JNS, JO, JNO, JP, JNP}
	for _, m := range jumps {
		assert.True(t, m.IsJump(), "%s should be a jump", m)
	}
	assert.False(t, MOV.IsJump())
	assert.False(t, CALL.IsJump())
}

func TestMnemonicIsCallOnlyCall(t *testing.T) {
	assert.True(t, CALL.IsCall())
	assert.False(t, JMP.IsCall())
	assert.False(t, RET.IsCall())
}

func TestMnemonicIsReturnOnlyRet(t *testing.T) {
	assert.True(t, RET.IsReturn())
	assert.False(t, CALL.IsReturn())
	assert.False(t, JMP.IsReturn())
}

func TestMnemonicCategoriesDoNotOverlap(t *testing.T) {
	assert.False(t, ADD.IsJump())
	assert.False(t, ADD.IsCall())
	assert.False(t, ADD.IsReturn())
	assert.False(t, CMOVE.IsJump())
	assert.False(t, SETE.IsJump())
}

func TestUnknownMnemonicStringIsPlaceholder(t *testing.T) {
	assert.Equal(t, "<invalid mnemonic>", Mnemonic(-1).String())
}
