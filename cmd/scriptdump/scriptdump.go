// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"github.com/libbitcoin-go/core/internal/buildinfo"
	"github.com/libbitcoin-go/core/machine"
	"github.com/libbitcoin-go/core/script"
	"github.com/libbitcoin-go/core/txo"
	"github.com/libbitcoin-go/core/transaction"
	"github.com/libbitcoin-go/core/witness"
)

func usage() {
	fmt.Fprint(os.Stderr,
		"Usage: scriptdump disasm <script-hex>\n"+
			"       scriptdump verify <prevscript-hex> <amount> <sigscript-hex> [witness-item-hex ...]\n"+
			"       scriptdump -version\n")
}

func main() {
	buildinfo.SetUserAgentName("scriptdump")
	if len(os.Args) < 2 {
		usage()
		os.Exit(100)
	}
	switch os.Args[1] {
	case "-version":
		fmt.Println(buildinfo.Version())
	case "disasm":
		disasm(os.Args[2:])
	case "verify":
		verify(os.Args[2:])
	default:
		usage()
		os.Exit(100)
	}
}

func disasm(args []string) {
	if len(args) != 1 {
		usage()
		os.Exit(100)
	}
	raw, err := hex.DecodeString(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Malformed hex encoding")
		os.Exit(100)
	}
	s := script.Parse(raw)
	if !s.ValidParse {
		fmt.Fprintln(os.Stderr, "Warning: script did not parse cleanly")
	}
	fmt.Println(s.Disassemble())
}

// verify runs the script machine over a single synthetic input: a
// one-input, one-output transaction spending the given previous output
// script under StandardVerifyFlags, the same scope the teacher's checksig
// tool covers for a single signature rather than a whole chain.
func verify(args []string) {
	if len(args) < 3 {
		usage()
		os.Exit(100)
	}
	prevRaw, err := hex.DecodeString(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Malformed previous-script hex encoding")
		os.Exit(100)
	}
	amount, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Malformed amount")
		os.Exit(100)
	}
	sigRaw, err := hex.DecodeString(args[2])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Malformed signature-script hex encoding")
		os.Exit(100)
	}

	var wit witness.Witness
	for _, arg := range args[3:] {
		item, err := hex.DecodeString(arg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Malformed witness-item hex encoding")
			os.Exit(100)
		}
		wit.Stack = append(wit.Stack, item)
	}

	prevScript := script.Parse(prevRaw)
	sigScript := script.Parse(sigRaw)

	tx := transaction.Transaction{
		Version: 1,
		Inputs: []txo.Input{{
			Script:   sigScript,
			Witness:  wit,
			Sequence: txo.NullIndex,
		}},
		Outputs: []txo.Output{{Value: amount, Script: prevScript}},
	}

	eng, eerr := machine.New(tx, 0, prevScript, sigScript, wit, amount, machine.StandardVerifyFlags)
	if eerr != nil {
		fmt.Fprintln(os.Stderr, eerr.Message())
		os.Exit(100)
	}
	ok, eerr := eng.Execute()
	if eerr != nil {
		fmt.Fprintln(os.Stderr, eerr.Message())
		os.Exit(100)
	}
	if !ok {
		fmt.Fprintln(os.Stderr, "Script evaluated to false")
		os.Exit(100)
	}
	fmt.Println("OK")
}
