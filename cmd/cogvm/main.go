// Copyright 2025, The cogvm Authors

package main

import (
	"flag"
	"fmt"
	"log"
	"maps"
	"os"
	"slices"

	"github.com/mattn/go-isatty"

	"github.com/cogwork/cogvm/cpu"
	"github.com/cogwork/cogvm/emulator"
)

func main() {
	var config string
	var limit int
	var trace bool
	var defines bool
	var verbose bool

	flag.StringVar(&config, "f", "", "YAML configuration file")
	flag.IntVar(&limit, "n", 0, "Maximum instructions per run")
	flag.BoolVar(&trace, "t", false, "Trace each instruction")
	flag.BoolVar(&defines, "defines", false, "List the predeclared constants")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	conf := &emulator.Config{}
	if len(config) != 0 {
		var err error
		conf, err = emulator.LoadConfig(config)
		if err != nil {
			log.Fatalf("%v: %v", config, err)
		}
	}
	if limit != 0 {
		conf.MaxInstructions = limit
	}
	if trace {
		conf.Trace = true
	}

	emu := emulator.NewEmulator(*conf)
	emu.Verbose = verbose

	if defines {
		all := map[string]cpu.Value{}
		for name, value := range emu.Defines() {
			all[name] = value
		}
		for _, name := range slices.Sorted(maps.Keys(all)) {
			fmt.Printf("%v = %v\n", name, all[name])
		}
		return
	}

	if flag.NArg() != 1 {
		log.Fatalf("usage: %v [options] source.cog", os.Args[0])
	}

	source := flag.Arg(0)
	inf, err := os.Open(source)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}
	defer inf.Close()

	if err := emu.Compile(inf); err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	err = emu.Run()

	header := "== final state =="
	if isatty.IsTerminal(os.Stdout.Fd()) {
		header = "\033[1m" + header + "\033[0m"
	}
	fmt.Println(header)
	fmt.Print(emu.Machine.String())

	if err != nil {
		log.Fatal(err)
	}
}
