// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package machine

import (
	"github.com/libbitcoin-go/core/number"
	"github.com/libbitcoin-go/core/script/scripterr"

	"github.com/libbitcoin-go/core/internal/er"
)

// Stack is an ordered sequence of byte strings, addressed with the top of
// stack at the highest index. It backs both the primary and alternate
// stacks of Engine.
type Stack struct {
	data             [][]byte
	verifyMinimalData bool
}

func (s *Stack) Depth() int { return len(s.data) }

func (s *Stack) PushByteArray(b []byte) {
	s.data = append(s.data, b)
}

func (s *Stack) PushBool(v bool) {
	if v {
		s.PushByteArray(number.ScriptNumBytes(1))
	} else {
		s.PushByteArray(number.ScriptNumBytes(0))
	}
}

func (s *Stack) PushInt(n int64) {
	s.PushByteArray(number.ScriptNumBytes(n))
}

func (s *Stack) PopByteArray() ([]byte, er.R) {
	v, err := s.PeekByteArray(0)
	if err != nil {
		return nil, err
	}
	s.data = s.data[:len(s.data)-1]
	return v, nil
}

func (s *Stack) PeekByteArray(idx int) ([]byte, er.R) {
	if idx < 0 || idx >= len(s.data) {
		return nil, scripterr.New(scripterr.ErrInvalidStackOperation, "index out of range")
	}
	return s.data[len(s.data)-idx-1], nil
}

func (s *Stack) PopBool() (bool, er.R) {
	b, err := s.PopByteArray()
	if err != nil {
		return false, err
	}
	return asBool(b), nil
}

func (s *Stack) PopInt() (int64, er.R) {
	b, err := s.PopByteArray()
	if err != nil {
		return 0, err
	}
	return number.ParseScriptNum(b, s.verifyMinimalData, 4)
}

// asBool reports script-number truthiness: any nonzero byte makes the
// value true, except a lone sign bit in the final byte (negative zero).
func asBool(b []byte) bool {
	for i, v := range b {
		if v == 0 {
			continue
		}
		if i == len(b)-1 && v == 0x80 {
			return false
		}
		return true
	}
	return false
}

func (s *Stack) nipN(n int) er.R {
	idx := len(s.data) - n - 1
	if idx < 0 {
		return scripterr.New(scripterr.ErrInvalidStackOperation, "nipN out of range")
	}
	s.data = append(s.data[:idx], s.data[idx+1:]...)
	return nil
}

func (s *Stack) Nip() er.R { return s.nipN(0) }

func (s *Stack) DropN(n int) er.R {
	if len(s.data) < n {
		return scripterr.New(scripterr.ErrInvalidStackOperation, "dropN out of range")
	}
	for i := 0; i < n; i++ {
		s.data = s.data[:len(s.data)-1]
	}
	return nil
}

func (s *Stack) DupN(n int) er.R {
	if n < 1 || len(s.data) < n {
		return scripterr.New(scripterr.ErrInvalidStackOperation, "dupN out of range")
	}
	start := len(s.data) - n
	for i := 0; i < n; i++ {
		s.data = append(s.data, s.data[start+i])
	}
	return nil
}

func (s *Stack) OverN(n int) er.R {
	if len(s.data) < 2*n {
		return scripterr.New(scripterr.ErrInvalidStackOperation, "overN out of range")
	}
	start := len(s.data) - 2*n
	for i := 0; i < n; i++ {
		s.data = append(s.data, s.data[start+i])
	}
	return nil
}

// RotN rotates the top 3*n stack entries, treated as three adjacent
// groups of n, left by one group: [a b c] becomes [b c a].
func (s *Stack) RotN(n int) er.R {
	if n < 1 || len(s.data) < 3*n {
		return scripterr.New(scripterr.ErrInvalidStackOperation, "rotN out of range")
	}
	entry := len(s.data) - 3*n
	a := append([][]byte{}, s.data[entry:entry+n]...)
	rest := append([][]byte{}, s.data[entry+n:]...)
	s.data = append(s.data[:entry], rest...)
	s.data = append(s.data, a...)
	return nil
}

func (s *Stack) SwapN(n int) er.R {
	if len(s.data) < 2*n {
		return scripterr.New(scripterr.ErrInvalidStackOperation, "swapN out of range")
	}
	entry := len(s.data) - 2*n
	for i := 0; i < n; i++ {
		s.data[entry+i], s.data[entry+n+i] = s.data[entry+n+i], s.data[entry+i]
	}
	return nil
}

func (s *Stack) Tuck() er.R {
	if len(s.data) < 2 {
		return scripterr.New(scripterr.ErrInvalidStackOperation, "tuck out of range")
	}
	top, _ := s.PeekByteArray(0)
	entry := len(s.data) - 2
	s.data = append(s.data, nil)
	copy(s.data[entry+1:], s.data[entry:])
	s.data[entry] = top
	return nil
}

func (s *Stack) PickN(n int) er.R { return s.pickRoll(n, false) }
func (s *Stack) RollN(n int) er.R { return s.pickRoll(n, true) }

func (s *Stack) pickRoll(n int, remove bool) er.R {
	if n < 0 || n >= len(s.data) {
		return scripterr.New(scripterr.ErrInvalidStackOperation, "pick/roll index out of range")
	}
	idx := len(s.data) - n - 1
	v := s.data[idx]
	if remove {
		s.data = append(s.data[:idx], s.data[idx+1:]...)
	}
	s.data = append(s.data, v)
	return nil
}
