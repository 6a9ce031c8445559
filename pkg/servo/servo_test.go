package servo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJointChannels(t *testing.T) {
	joints := AllJoints()
	require.Len(t, joints, 12)

	// Channels 0..11, three consecutive per leg, in order.
	for i, j := range joints {
		ch, err := j.Channel()
		require.NoError(t, err, "joint %s", j)
		assert.Equal(t, i, ch, "joint %s", j)
	}

	assert.Equal(t, Joint("leg3_elbow"), JointFor(3, Elbow))
	ch, err := Joint("leg4_foot").Channel()
	require.NoError(t, err)
	assert.Equal(t, 11, ch)
}

func TestJointUnknown(t *testing.T) {
	_, err := Joint("leg5_shoulder").Channel()
	assert.ErrorIs(t, err, ErrUnknownJoint)
	assert.False(t, Joint("head").Valid())
}

func TestClampAngle(t *testing.T) {
	cases := []struct{ in, want int }{
		{-10, 0},
		{0, 0},
		{90, 90},
		{180, 180},
		{200, 180},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClampAngle(tc.in), "clamp %d", tc.in)
	}
}

func TestStateTableDefaults(t *testing.T) {
	table := NewStateTable()
	for _, j := range AllJoints() {
		assert.Equal(t, NeutralAngle, table.Get(j), "joint %s", j)
	}
	// Unknown joints read as neutral.
	assert.Equal(t, NeutralAngle, table.Get("leg9_foot"))
}

func TestStateTableSnapshotIsolated(t *testing.T) {
	table := NewStateTable()
	table.Set("leg1_foot", 45)

	snap := table.Snapshot()
	require.Equal(t, 45, snap["leg1_foot"])

	// Mutating the snapshot must not touch the table.
	snap["leg1_foot"] = 10
	assert.Equal(t, 45, table.Get("leg1_foot"))
}

func TestDetachedBusChannelRange(t *testing.T) {
	bus := NewDetachedBus()
	assert.NoError(t, bus.SetAngle(0, 90))
	assert.NoError(t, bus.SetAngle(15, 0))
	assert.ErrorIs(t, bus.SetAngle(16, 90), ErrChannelOutOfRange)
	assert.ErrorIs(t, bus.SetAngle(-1, 90), ErrChannelOutOfRange)
}
