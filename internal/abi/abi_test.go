package abi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vnc/internal/x86"
)

func TestForResolvesKind(t *testing.T) {
	assert.Same(t, SystemVABI, For(SystemV))
	assert.Same(t, WindowsABI, For(Windows))
}

func TestSystemVParameterDispatch(t *testing.T) {
	a := SystemVABI
	want := []x86.Register{x86.RDI, x86.RSI, x86.RDX, x86.RCX, x86.R8, x86.R9}
	assert.Equal(t, want, a.IntParamRegisters())
	for i, r := range want {
		assert.True(t, a.IsParameterRegister(r, i))
	}
	assert.False(t, a.IsParameterRegister(x86.RDI, 1))
}

func TestWindowsParameterDispatch(t *testing.T) {
	a := WindowsABI
	want := []x86.Register{x86.RCX, x86.RDX, x86.R8, x86.R9}
	assert.Equal(t, want, a.IntParamRegisters())
	assert.True(t, a.IsParameterRegister(x86.XMM2, 2))
	assert.False(t, a.IsParameterRegister(x86.XMM2, 3))
}

func TestSeventhIntegerArgumentSpillsToStackOnLinux(t *testing.T) {
	a := SystemVABI
	require.Len(t, a.IntParamRegisters(), 6)
	assert.Equal(t, 8, a.FirstStackParamOffset())
}

func TestFifthArgumentOffsetOnWindows(t *testing.T) {
	a := WindowsABI
	require.Len(t, a.IntParamRegisters(), 4)
	assert.Equal(t, 40, a.FirstStackParamOffset())
}

func TestReturnRegisters(t *testing.T) {
	assert.Equal(t, []x86.Register{x86.RAX, x86.RDX}, SystemVABI.IntReturnRegisters())
	assert.Equal(t, []x86.Register{x86.XMM0, x86.XMM1}, SystemVABI.FloatReturnRegisters())
	assert.Equal(t, []x86.Register{x86.XMM0}, WindowsABI.FloatReturnRegisters())
	assert.True(t, SystemVABI.IsReturnRegister(x86.RDX))
	assert.False(t, WindowsABI.IsReturnRegister(x86.XMM1))
}

func TestStructReturnConvention(t *testing.T) {
	assert.Equal(t, x86.RDI, SystemVABI.StructReturnPointerRegister())
	assert.Equal(t, 16, SystemVABI.MaxStructReturnSize())
	assert.Equal(t, x86.RCX, WindowsABI.StructReturnPointerRegister())
	assert.Equal(t, 8, WindowsABI.MaxStructReturnSize())
}

func TestStructReturnPointerRegisterEqualsFirstIntParam(t *testing.T) {
	for _, a := range []*ABI{SystemVABI, WindowsABI} {
		assert.Equal(t, a.IntParamRegisters()[0], a.StructReturnPointerRegister())
	}
}

func TestVariadicConvention(t *testing.T) {
	assert.True(t, SystemVABI.VariadicInfo().VectorCountInAL)
	assert.False(t, WindowsABI.VariadicInfo().VectorCountInAL)
}

func TestStackAndRedZoneAndShadowSpace(t *testing.T) {
	assert.Equal(t, 16, SystemVABI.StackAlignment())
	assert.Equal(t, 128, SystemVABI.RedZone())
	assert.Equal(t, 0, SystemVABI.ShadowSpace())
	assert.Equal(t, 16, WindowsABI.StackAlignment())
	assert.Equal(t, 0, WindowsABI.RedZone())
	assert.Equal(t, 32, WindowsABI.ShadowSpace())
}

func TestFirstStackParamOffsetEqualsEightPlusShadowSpace(t *testing.T) {
	for _, a := range []*ABI{SystemVABI, WindowsABI} {
		assert.Equal(t, 8+a.ShadowSpace(), a.FirstStackParamOffset())
	}
}

// every non-RSP general-purpose register is exactly one of
// callee-saved or caller-saved under each ABI (spec.md §8 property 5).
func TestEveryNonRSPGPRegisterIsExactlyOneOfCalleeOrCallerSaved(t *testing.T) {
	gpRegisters := []x86.Register{
		x86.RAX, x86.RBX, x86.RCX, x86.RDX, x86.RSI, x86.RDI, x86.RBP,
		x86.R8, x86.R9, x86.R10, x86.R11, x86.R12, x86.R13, x86.R14, x86.R15,
	}
	for _, a := range []*ABI{SystemVABI, WindowsABI} {
		for _, r := range gpRegisters {
			callee := a.IsCalleeSaved(r)
			caller := a.IsCallerSaved(r)
			assert.True(t, callee != caller, "%s under %s: callee=%v caller=%v (expected exactly one)", r, a.Name(), callee, caller)
		}
		assert.False(t, a.IsCalleeSaved(x86.RSP))
		assert.False(t, a.IsCallerSaved(x86.RSP))
	}
}

func TestCallerSavedXMMIsComplementOfCalleeSavedUnderWindows(t *testing.T) {
	a := WindowsABI
	assert.Len(t, a.CallerSavedXMMRegisters(), 6)
	for _, r := range a.CallerSavedXMMRegisters() {
		assert.False(t, a.IsCalleeSaved(r))
		assert.True(t, a.IsCallerSaved(r))
	}
}

func TestSystemVHasNoCalleeSavedXMM(t *testing.T) {
	assert.Empty(t, SystemVABI.CalleeSavedXMMRegisters())
	assert.Len(t, SystemVABI.CallerSavedXMMRegisters(), 16)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "System V AMD64", SystemVABI.Name())
	assert.Equal(t, "Microsoft x64", WindowsABI.Name())
}
