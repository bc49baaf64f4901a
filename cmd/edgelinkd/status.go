package main

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/edgelink/edgelinkd/internal/adminapi"
)

// StatusCmd queries a running daemon's session state over the admin API.
type StatusCmd struct{}

func (c *StatusCmd) Run(cli *CLI) error {
	addr, err := adminAddr(cli)
	if err != nil {
		return err
	}
	resp, err := adminapi.NewClient(addr).Do("status", "")
	if err != nil {
		return fmt.Errorf("query status: %w", err)
	}
	if apiErr, ok := adminapi.DecodeError(resp); ok {
		return apiErr
	}

	// Piped output (e.g. into jq) gets the raw compact line; an
	// interactive terminal gets it indented for reading.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println(resp)
		return nil
	}

	var pretty map[string]any
	if err := json.Unmarshal([]byte(resp), &pretty); err != nil {
		fmt.Println(resp)
		return nil
	}
	out, err := json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		fmt.Println(resp)
		return nil
	}
	fmt.Println(string(out))
	return nil
}
