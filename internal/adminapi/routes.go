package adminapi

import (
	"encoding/json"
	"log/slog"

	"github.com/edgelink/edgelinkd/internal/daemon"
)

// statusDTO is the wire shape for the "status" route; daemon.Status holds
// *types.MachineId, which doesn't round-trip through encoding/json the way
// we want (a hyphenated string, not a byte array).
type statusDTO struct {
	Controlling  string `json:"controlling,omitempty"`
	ControlledBy string `json:"controlled_by,omitempty"`
	SessionCount int    `json:"session_count"`
	CursorX      int32  `json:"cursor_x"`
	CursorY      int32  `json:"cursor_y"`
}

// RegisterDaemonRoutes wires the "status" and "stop" admin routes to a
// running daemon. fingerprint is this machine's own certificate fingerprint,
// served at "fingerprint" for a remote peer's `pair` command.
func RegisterDaemonRoutes(r *Router, d *daemon.Daemon, fingerprint string) {
	r.Register("status", func(_ *Request, res *Response, _ *slog.Logger) error {
		st := d.Status()
		dto := statusDTO{
			SessionCount: st.SessionCount,
			CursorX:      st.CursorX,
			CursorY:      st.CursorY,
		}
		if st.Controlling != nil {
			dto.Controlling = st.Controlling.String()
		}
		if st.ControlledBy != nil {
			dto.ControlledBy = st.ControlledBy.String()
		}
		body, err := json.Marshal(dto)
		if err != nil {
			return err
		}
		res.JSON = string(body)
		return nil
	})

	r.Register("stop", func(_ *Request, res *Response, _ *slog.Logger) error {
		d.Shutdown()
		res.JSON = `{"stopping":true}`
		return nil
	})

	r.Register("fingerprint", func(_ *Request, res *Response, _ *slog.Logger) error {
		body, err := json.Marshal(map[string]string{"fingerprint": fingerprint})
		if err != nil {
			return err
		}
		res.JSON = string(body)
		return nil
	})
}
