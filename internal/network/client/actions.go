package client

import "github.com/jptuazon/pusoy-dos/internal/protocol"

// Hello joins the table, carrying the local game config for the
// server's mismatch check.
func (c *Client) Hello(name string, cfg protocol.ConfigPayload) error {
	return c.Send(protocol.MsgHello, protocol.HelloPayload{Name: name, Config: cfg})
}

// Throw proposes the selected positions of the hand. The whole hand is
// echoed so the server can detect a desynced view before validating.
func (c *Client) Throw(cards []int, selected []bool) error {
	return c.Send(protocol.MsgThrow, protocol.ThrowPayload{
		Seat:     c.Seat,
		Cards:    cards,
		Selected: selected,
	})
}

// Pass declines to throw.
func (c *Client) Pass() error {
	return c.Send(protocol.MsgPass, nil)
}

// Forfeit concedes the round.
func (c *Client) Forfeit() error {
	return c.Send(protocol.MsgForfeit, nil)
}

// Quit abandons the round for everyone at the table.
func (c *Client) Quit() error {
	return c.Send(protocol.MsgQuit, nil)
}

// Ping sends a heartbeat.
func (c *Client) Ping() error {
	return c.Send(protocol.MsgPing, nil)
}
