package daemon

import (
	"github.com/edgelink/edgelinkd/internal/session"
	"github.com/edgelink/edgelinkd/internal/types"
)

func (d *Daemon) handleEvent(ev Event) {
	switch e := ev.(type) {
	case CapturedInputEvent:
		d.handleCapturedInput(e.Event)
	case PeerControlEvent:
		d.handlePeerControl(e.Peer, e.Message)
	case PeerInputEvent:
		d.handlePeerInput(e.Peer, e.Message)
	case SessionReadyEvent:
		d.handleSessionReady(e.Session)
	case PeerDisconnectedEvent:
		d.handlePeerDisconnected(e.Peer)
	case IncomingConnectionEvent:
		// Informational only; the session itself arrives via SessionReady.
	}
}

func (d *Daemon) handleSessionReady(sess *session.Session) {
	peer := sess.RemoteMachineId()
	d.sessions[peer] = sess
	d.peerIdByName[sess.RemoteName()] = peer
	d.logger.Info("session ready", "peer", sess.RemoteName(), "id", peer)
}

func (d *Daemon) handleCapturedInput(ev types.CapturedEvent) {
	if ke, ok := ev.Event.(types.KeyEvent); ok {
		d.pressed.update(ke.Code, ke.Pressed)
	}

	if d.controlling != nil && d.pressed.isSubsetOf(d.cfg.ReleaseHotkey) {
		d.release()
		return
	}

	if d.controlling != nil {
		peer := *d.controlling
		sess, ok := d.sessions[peer]
		if !ok {
			d.release()
			return
		}
		err := sess.SendInput(types.InputMessage{
			DeviceId:        ev.DeviceId,
			TimestampMicros: ev.TimestampMicros,
			Events:          []types.InputEvent{ev.Event},
		})
		if err != nil {
			d.logger.Warn("send input to controlled peer failed", "peer", sess.RemoteName(), "error", err)
			d.release()
		}
		return
	}

	if mm, ok := ev.Event.(types.MouseMoveEvent); ok {
		d.cursorX, d.cursorY = clampCursor(d.cursorX+mm.DX, d.cursorY+mm.DY, d.cfg.Screen)
		d.checkBarrierCrossing()
	}
}

// checkBarrierCrossing implements spec.md §4.3 "Barrier detection": first
// configured neighbour whose local edge the cursor currently sits on wins.
func (d *Daemon) checkBarrierCrossing() {
	for _, sc := range d.cfg.Screens {
		peer, ok := d.peerIdByName[sc.Name]
		if !ok {
			continue
		}
		edge := sc.Position.LocalEdge()
		if !atEdge(d.cursorX, d.cursorY, d.cfg.Screen, edge) {
			continue
		}
		position := positionAlongEdge(d.cursorX, d.cursorY, edge)
		d.initiateControl(peer, edge, position)
		return
	}
}

// initiateControl calls send_enter without latching `controlling` — that
// happens only once EnterAck arrives as a PeerControl event.
func (d *Daemon) initiateControl(peer types.MachineId, edge types.ScreenEdge, position int32) {
	sess, ok := d.sessions[peer]
	if !ok {
		return
	}
	if err := sess.SendEnter(d.ctx, edge, position); err != nil {
		d.logger.Warn("send_enter failed", "peer", sess.RemoteName(), "error", err)
	}
}

// release is invoked on hot-key match or a send failure while controlling.
func (d *Daemon) release() {
	if d.controlling == nil {
		return
	}
	peer := *d.controlling
	if sess, ok := d.sessions[peer]; ok {
		_ = sess.Leave(types.EdgeLeft, 0)
	}
	if err := d.capture.Release(); err != nil {
		d.logger.Warn("capture release failed", "error", err)
	}
	d.controlling = nil
	d.cursorX = int32(d.cfg.Screen.Width / 2)
	d.cursorY = int32(d.cfg.Screen.Height / 2)
}

func (d *Daemon) handlePeerControl(peer types.MachineId, msg types.ControlMessage) {
	sess, ok := d.sessions[peer]
	if !ok {
		return
	}
	switch m := msg.(type) {
	case types.HelloMessage, types.WelcomeMessage:
		// Handshake owns these; anything arriving here is stale or
		// misbehaving and is ignored.

	case types.EnterAckMessage:
		sess.SetControlling()
		p := peer
		d.controlling = &p

	case types.EnterMessage:
		if err := sess.HandleEnter(); err != nil {
			d.logger.Warn("handle_enter failed", "peer", sess.RemoteName(), "error", err)
			return
		}
		p := peer
		d.controlledBy = &p
		entry := m.Edge.Opposite()
		d.entryEdge = &entry
		d.cursorX, d.cursorY = warpToEdge(entry, m.Position, d.cfg.Screen)
		go d.pumpInput(d.ctx, peer, sess)

	case types.LeaveMessage:
		d.handleLeaveMessage(peer, sess, m)

	case types.DeviceAnnounceMessage:
		vid, err := d.emulation.CreateDevice(m.Info)
		if err != nil {
			d.logger.Warn("create virtual device failed", "peer", sess.RemoteName(), "device", m.Info.DeviceId, "error", err)
			return
		}
		sess.MapDevice(m.Info.DeviceId, vid)

	case types.DeviceGoneMessage:
		if vid, ok := sess.UnmapDevice(m.DeviceId); ok {
			if err := d.emulation.DestroyDevice(vid); err != nil {
				d.logger.Warn("destroy virtual device failed", "error", err)
			}
		}

	case types.ScreenUpdateMessage:
		sess.SetRemoteScreen(m.Screen)

	case types.PingMessage:
		if err := sess.ControlSender().Send(types.PongMessage{Seq: m.Seq}); err != nil {
			d.logger.Warn("send pong failed", "peer", sess.RemoteName(), "error", err)
		}

	case types.PongMessage:
		// No RTT tracking layer yet; observing it is enough to keep the
		// control stream from going idle-timed-out.

	case types.ByeMessage:
		d.handlePeerDisconnected(peer)
	}
}

func (d *Daemon) handleLeaveMessage(peer types.MachineId, sess *session.Session, m types.LeaveMessage) {
	switch {
	case d.controlling != nil && *d.controlling == peer:
		d.controlling = nil
		if err := d.capture.Release(); err != nil {
			d.logger.Warn("capture release failed", "error", err)
		}
		if next, ok := d.adjacency.next(sess.RemoteName(), m.Edge); ok && next != d.cfg.Name {
			if nextPeer, ok := d.peerIdByName[next]; ok {
				d.initiateControl(nextPeer, m.Edge, m.Position)
				return
			}
		}
		d.cursorX, d.cursorY = warpToEdge(m.Edge.Opposite(), m.Position, d.cfg.Screen)

	case d.controlledBy != nil && *d.controlledBy == peer:
		if err := sess.HandleLeave(); err != nil {
			d.logger.Warn("handle_leave failed", "peer", sess.RemoteName(), "error", err)
		}
		d.controlledBy = nil
		d.entryEdge = nil

	default:
		d.logger.Warn("unexpected Leave", "peer", sess.RemoteName())
	}
}

func (d *Daemon) handlePeerInput(peer types.MachineId, msg types.InputMessage) {
	if d.controlledBy == nil || *d.controlledBy != peer {
		d.logger.Warn("dropping input from non-controlling peer", "peer", peer)
		return
	}
	sess, ok := d.sessions[peer]
	if !ok {
		return
	}

	for _, ev := range msg.Events {
		if mm, ok := ev.(types.MouseMoveEvent); ok {
			d.cursorX, d.cursorY = clampCursor(d.cursorX+mm.DX, d.cursorY+mm.DY, d.cfg.Screen)
		}
	}

	if d.entryEdge != nil && !atEdge(d.cursorX, d.cursorY, d.cfg.Screen, *d.entryEdge) {
		d.entryEdge = nil
	}

	for _, sc := range d.cfg.Screens {
		edge := sc.Position.LocalEdge()
		if !atEdge(d.cursorX, d.cursorY, d.cfg.Screen, edge) {
			continue
		}
		if d.entryEdge != nil && *d.entryEdge == edge {
			continue
		}
		position := positionAlongEdge(d.cursorX, d.cursorY, edge)
		if err := sess.Leave(edge, position); err != nil {
			d.logger.Warn("reverse leave failed", "peer", sess.RemoteName(), "error", err)
		}
		d.controlledBy = nil
		d.entryEdge = nil
		return
	}

	for _, ev := range msg.Events {
		vid, ok := sess.ResolveDevice(msg.DeviceId)
		if !ok {
			continue
		}
		if err := d.emulation.Inject(vid, ev); err != nil {
			d.logger.Warn("inject failed", "peer", sess.RemoteName(), "device", msg.DeviceId, "error", err)
		}
	}
}

func (d *Daemon) handlePeerDisconnected(peer types.MachineId) {
	sess, ok := d.sessions[peer]
	if !ok {
		return
	}
	if d.controlling != nil && *d.controlling == peer {
		d.controlling = nil
	}
	if d.controlledBy != nil && *d.controlledBy == peer {
		d.controlledBy = nil
		d.entryEdge = nil
	}
	for _, vid := range sess.VirtualDevices() {
		if err := d.emulation.DestroyDevice(vid); err != nil {
			d.logger.Warn("destroy virtual device on disconnect failed", "error", err)
		}
	}
	delete(d.peerIdByName, sess.RemoteName())
	delete(d.sessions, peer)
	d.logger.Info("peer disconnected", "peer", peer)
}
