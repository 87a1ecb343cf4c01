// Package x86 implements the x86-64 register and instruction model
// (C13, spec.md §4.11): a register file tagged by class and width, a
// closed operand union, a mnemonic set classified into data movement,
// arithmetic, logical, shift/rotate, comparison, jump, call/return,
// conditional move, SETcc, SSE/AVX, FPU, bit-manipulation, string and
// system groups, and Intel-syntax textual rendering.
package x86

import "fmt"

// RegClass partitions the register file by the classification
// predicates the backend and the ABI layer (C14) switch on.
type RegClass int

const (
	ClassGP RegClass = iota
	ClassSIMD
	ClassFPU
	ClassSpecial
)

func (c RegClass) String() string {
	switch c {
	case ClassGP:
		return "gp"
	case ClassSIMD:
		return "simd"
	case ClassFPU:
		return "fpu"
	case ClassSpecial:
		return "special"
	default:
		return "unknown"
	}
}

// Register enumerates every architectural register and sub-register
// this backend names. General-purpose registers appear in their
// 64/32/16/8-bit aliases in that order.
type Register int

const (
	RAX Register = iota
	EAX
	AX
	AL
	RBX
	EBX
	BX
	BL
	RCX
	ECX
	CX
	CL
	RDX
	EDX
	DX
	DL
	RSI
	ESI
	SI
	SIL
	RDI
	EDI
	DI
	DIL
	RBP
	EBP
	BP
	BPL
	RSP
	ESP
	SP
	SPL
	R8
	R8D
	R8W
	R8B
	R9
	R9D
	R9W
	R9B
	R10
	R10D
	R10W
	R10B
	R11
	R11D
	R11W
	R11B
	R12
	R12D
	R12W
	R12B
	R13
	R13D
	R13W
	R13B
	R14
	R14D
	R14W
	R14B
	R15
	R15D
	R15W
	R15B

	XMM0
	XMM1
	XMM2
	XMM3
	XMM4
	XMM5
	XMM6
	XMM7
	XMM8
	XMM9
	XMM10
	XMM11
	XMM12
	XMM13
	XMM14
	XMM15

	ST0
	ST1
	ST2
	ST3
	ST4
	ST5
	ST6
	ST7

	RFLAGS

	numRegisters
)

type registerInfo struct {
	name  string
	class RegClass
	bits  int
}

var registerTable = [numRegisters]registerInfo{
	RAX: {"rax", ClassGP, 64}, EAX: {"eax", ClassGP, 32}, AX: {"ax", ClassGP, 16}, AL: {"al", ClassGP, 8},
	RBX: {"rbx", ClassGP, 64}, EBX: {"ebx", ClassGP, 32}, BX: {"bx", ClassGP, 16}, BL: {"bl", ClassGP, 8},
	RCX: {"rcx", ClassGP, 64}, ECX: {"ecx", ClassGP, 32}, CX: {"cx", ClassGP, 16}, CL: {"cl", ClassGP, 8},
	RDX: {"rdx", ClassGP, 64}, EDX: {"edx", ClassGP, 32}, DX: {"dx", ClassGP, 16}, DL: {"dl", ClassGP, 8},
	RSI: {"rsi", ClassGP, 64}, ESI: {"esi", ClassGP, 32}, SI: {"si", ClassGP, 16}, SIL: {"sil", ClassGP, 8},
	RDI: {"rdi", ClassGP, 64}, EDI: {"edi", ClassGP, 32}, DI: {"di", ClassGP, 16}, DIL: {"dil", ClassGP, 8},
	RBP: {"rbp", ClassGP, 64}, EBP: {"ebp", ClassGP, 32}, BP: {"bp", ClassGP, 16}, BPL: {"bpl", ClassGP, 8},
	RSP: {"rsp", ClassGP, 64}, ESP: {"esp", ClassGP, 32}, SP: {"sp", ClassGP, 16}, SPL: {"spl", ClassGP, 8},

	R8: {"r8", ClassGP, 64}, R8D: {"r8d", ClassGP, 32}, R8W: {"r8w", ClassGP, 16}, R8B: {"r8b", ClassGP, 8},
	R9: {"r9", ClassGP, 64}, R9D: {"r9d", ClassGP, 32}, R9W: {"r9w", ClassGP, 16}, R9B: {"r9b", ClassGP, 8},
	R10: {"r10", ClassGP, 64}, R10D: {"r10d", ClassGP, 32}, R10W: {"r10w", ClassGP, 16}, R10B: {"r10b", ClassGP, 8},
	R11: {"r11", ClassGP, 64}, R11D: {"r11d", ClassGP, 32}, R11W: {"r11w", ClassGP, 16}, R11B: {"r11b", ClassGP, 8},
	R12: {"r12", ClassGP, 64}, R12D: {"r12d", ClassGP, 32}, R12W: {"r12w", ClassGP, 16}, R12B: {"r12b", ClassGP, 8},
	R13: {"r13", ClassGP, 64}, R13D: {"r13d", ClassGP, 32}, R13W: {"r13w", ClassGP, 16}, R13B: {"r13b", ClassGP, 8},
	R14: {"r14", ClassGP, 64}, R14D: {"r14d", ClassGP, 32}, R14W: {"r14w", ClassGP, 16}, R14B: {"r14b", ClassGP, 8},
	R15: {"r15", ClassGP, 64}, R15D: {"r15d", ClassGP, 32}, R15W: {"r15w", ClassGP, 16}, R15B: {"r15b", ClassGP, 8},

	XMM0: {"xmm0", ClassSIMD, 128}, XMM1: {"xmm1", ClassSIMD, 128}, XMM2: {"xmm2", ClassSIMD, 128}, XMM3: {"xmm3", ClassSIMD, 128},
	XMM4: {"xmm4", ClassSIMD, 128}, XMM5: {"xmm5", ClassSIMD, 128}, XMM6: {"xmm6", ClassSIMD, 128}, XMM7: {"xmm7", ClassSIMD, 128},
	XMM8: {"xmm8", ClassSIMD, 128}, XMM9: {"xmm9", ClassSIMD, 128}, XMM10: {"xmm10", ClassSIMD, 128}, XMM11: {"xmm11", ClassSIMD, 128},
	XMM12: {"xmm12", ClassSIMD, 128}, XMM13: {"xmm13", ClassSIMD, 128}, XMM14: {"xmm14", ClassSIMD, 128}, XMM15: {"xmm15", ClassSIMD, 128},

	ST0: {"st(0)", ClassFPU, 80}, ST1: {"st(1)", ClassFPU, 80}, ST2: {"st(2)", ClassFPU, 80}, ST3: {"st(3)", ClassFPU, 80},
	ST4: {"st(4)", ClassFPU, 80}, ST5: {"st(5)", ClassFPU, 80}, ST6: {"st(6)", ClassFPU, 80}, ST7: {"st(7)", ClassFPU, 80},

	RFLAGS: {"rflags", ClassSpecial, 64},
}

func (r Register) info() registerInfo {
	if r < 0 || int(r) >= len(registerTable) {
		return registerInfo{name: fmt.Sprintf("reg(%d)", int(r))}
	}
	return registerTable[r]
}

func (r Register) String() string { return r.info().name }

// Bits is the register's width (8/16/32/64/80/128).
func (r Register) Bits() int { return r.info().bits }

// Class reports which register file r belongs to.
func (r Register) Class() RegClass { return r.info().class }

// IsGP reports whether r is a general-purpose integer register.
func (r Register) IsGP() bool { return r.Class() == ClassGP }

// IsSIMD reports whether r is an XMM (SSE/AVX) register.
func (r Register) IsSIMD() bool { return r.Class() == ClassSIMD }

// IsFloat reports whether r is an x87 FPU stack register.
func (r Register) IsFloat() bool { return r.Class() == ClassFPU }

// IsSpecial reports whether r is a non-general-purpose architectural
// register such as RFLAGS.
func (r Register) IsSpecial() bool { return r.Class() == ClassSpecial }
