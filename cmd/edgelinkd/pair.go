package main

import (
	"encoding/json"
	"fmt"

	"github.com/edgelink/edgelinkd/internal/adminapi"
)

// PairCmd fetches a remote machine's certificate fingerprint so the operator
// can copy it into this machine's [[screens]] fingerprint field. It does not
// perform any trust decision itself (see transport.AcceptAllVerifier) — it
// only reports what the remote end presents.
type PairCmd struct {
	Addr string `arg:"" help:"Remote machine's admin address, host:port."`
}

func (c *PairCmd) Run() error {
	resp, err := adminapi.NewClient(c.Addr).Do("fingerprint", "")
	if err != nil {
		return fmt.Errorf("fetch fingerprint from %s: %w", c.Addr, err)
	}
	if apiErr, ok := adminapi.DecodeError(resp); ok {
		return apiErr
	}
	var body struct {
		Fingerprint string `json:"fingerprint"`
	}
	if err := json.Unmarshal([]byte(resp), &body); err != nil {
		return fmt.Errorf("parse response from %s: %w", c.Addr, err)
	}
	fmt.Println(body.Fingerprint)
	return nil
}
