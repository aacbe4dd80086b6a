package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	data, err := Encode(MsgThrow, ThrowPayload{
		Seat:     2,
		Cards:    []int{0, 5, 17},
		Selected: []bool{true, false, true},
	})
	require.NoError(t, err)

	msg, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, MsgThrow, msg.Type)

	var throw ThrowPayload
	require.NoError(t, DecodePayload(msg, &throw))
	assert.Equal(t, 2, throw.Seat)
	assert.Equal(t, []int{0, 5, 17}, throw.Cards)
	assert.Equal(t, []bool{true, false, true}, throw.Selected)
}

func TestEncodeWithoutPayload(t *testing.T) {
	data, err := Encode(MsgPass, nil)
	require.NoError(t, err)

	msg, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, MsgPass, msg.Type)
	assert.Empty(t, msg.Payload)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not json"))
	assert.Error(t, err)
}

func TestConfigMismatch(t *testing.T) {
	base := ConfigPayload{Players: 4, Discard: 0, ControlMode: "beat_chance"}

	tests := []struct {
		name  string
		other ConfigPayload
		field string
	}{
		{"Identical configs match", base, ""},
		{"Player count differs", ConfigPayload{Players: 3, ControlMode: "beat_chance"}, "players"},
		{"Discard differs", ConfigPayload{Players: 4, Discard: 8, ControlMode: "beat_chance"}, "discard"},
		{"Control mode differs", ConfigPayload{Players: 4, ControlMode: "immediate"}, "control_mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.field, base.Mismatch(tt.other))
		})
	}
}
