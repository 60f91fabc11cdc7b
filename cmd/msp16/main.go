// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/ezrec/msp16/emulator"
)

// parseData parses a comma separated list of data words.
func parseData(text string) (data []int, err error) {
	if len(text) == 0 {
		return
	}

	for _, word := range strings.Split(text, ",") {
		var value int
		value, err = strconv.Atoi(strings.TrimSpace(word))
		if err != nil {
			return
		}
		data = append(data, value)
	}

	return
}

// interactive steps the emulator one instruction per keypress.
// Returns true if the user quit early.
func interactive(emu *emulator.Emulator) (quit bool, err error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		err = errors.New("stdin is not a terminal")
		return
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return
	}
	defer func() { _ = term.Restore(fd, state) }()

	key := make([]byte, 1)
	for {
		fmt.Printf("%3d: %v\r\n", emu.LineNo(), emu.Code())
		_, err = os.Stdin.Read(key)
		if err != nil {
			return
		}
		if key[0] == 'q' || key[0] == 3 {
			quit = true
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil {
			return
		}
		fmt.Print(strings.ReplaceAll(emu.Cpu.String(), "\n", "\r\n"))
		if done {
			return
		}
	}
}

func main() {
	var compile string
	var data string
	var listing bool
	var step bool
	var limit int
	var compat bool
	var verbose bool

	flag.StringVar(&compile, "c", "-", "assembly file to compile")
	flag.StringVar(&data, "d", "", "comma separated data words to preload")
	flag.BoolVar(&listing, "l", false, "Print the program listing")
	flag.BoolVar(&step, "i", false, "Interactive mode, one step per key, 'q' quits")
	flag.IntVar(&limit, "n", 0, "Maximum instructions to execute, 0 for no limit")
	flag.BoolVar(&compat, "compat", false, "Reference assembler label numbering and encoding")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	words, err := parseData(data)
	if err != nil {
		log.Fatalf("-d %v: %v", data, err)
	}

	emu, err := emulator.NewEmulator(words)
	if err != nil {
		log.Fatal(err)
	}
	emu.Verbose = verbose
	emu.Assembler.Compat = compat

	var inf io.Reader = os.Stdin
	if compile != "-" {
		file, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer file.Close()
		inf = file
	}

	err = emu.Assemble(inf)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	if listing {
		fmt.Print(emu.Program.Listing())
	}

	err = emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	if step {
		var quit bool
		quit, err = interactive(emu)
		if err != nil {
			log.Fatal(err)
		}
		if quit {
			return
		}
	} else {
		err = emu.Run(limit)
		if err != nil {
			fmt.Print(emu.Cpu.String())
			log.Fatal(err)
		}
		fmt.Print(emu.Cpu.String())
	}

	fmt.Println(emulator.Finished())
}
