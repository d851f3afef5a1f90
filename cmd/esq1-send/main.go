// Command esq1-send transfers program dumps between .syx files and an ESQ-1.
//
// In send mode (the default) it validates a .syx file and transmits it. With
// -recv it waits for the synth to transmit a dump and writes it to the file.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/synthkit/esq1/esq1"
	"github.com/synthkit/esq1/internal/cmdutil"
)

func main() {
	// Argument processing.
	var (
		inDevice  = flag.String("dev", "", "MIDI input device")
		outDevice = flag.String("odev", "", "MIDI output device (default: same as input)")
		recv      = flag.Bool("recv", false, "wait for a dump from the synth and save it")
		timeout   = flag.Duration("timeout", 30*time.Second, "receive timeout")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("need .syx file as argument")
	}
	filename := flag.Arg(0)

	midiConfig := cmdutil.Config{InDevice: *inDevice, OutDevice: *outDevice}
	conn, err := cmdutil.Open(&midiConfig)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if *recv {
		doReceive(conn, filename, *timeout)
	} else {
		doSend(conn, filename)
	}
}

func doSend(conn *cmdutil.Conn, filename string) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		log.Fatal(err)
	}
	msg, err := esq1.Decode(raw)
	if err != nil {
		log.Fatalf("%s: %v", filename, err)
	}
	log.Print("sending ", describe(msg))
	if _, err := conn.Write(raw); err != nil {
		log.Fatal(err)
	}
	log.Print("done")
}

func doReceive(conn *cmdutil.Conn, filename string, timeout time.Duration) {
	log.Print("waiting for dump (start the transfer on the synth)")
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			log.Fatal("no dump received")
		}
		raw := conn.Receive(remaining)
		if raw == nil {
			log.Fatal("no dump received")
		}
		msg, err := esq1.Decode(raw)
		if err != nil {
			log.Printf("ignoring message %x: %v", raw[:min(len(raw), 8)], err)
			continue
		}
		log.Print("received ", describe(msg))
		if err := os.WriteFile(filename, raw, 0644); err != nil {
			log.Fatal(err)
		}
		log.Print("saved to ", filename)
		return
	}
}

func describe(msg esq1.Message) string {
	switch msg := msg.(type) {
	case *esq1.ProgramDump:
		return fmt.Sprintf("single program %q (channel %d)", msg.Patch.Name, msg.Channel)
	case *esq1.AllProgramDump:
		return fmt.Sprintf("all-program bank of %d (channel %d)", len(msg.Bank), msg.Channel)
	default:
		return fmt.Sprintf("%T", msg)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
