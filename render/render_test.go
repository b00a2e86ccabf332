package render_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/CSUNetSec/mrtrib/addr"
	"github.com/CSUNetSec/mrtrib/bgpattr"
	"github.com/CSUNetSec/mrtrib/mrtfmt"
	"github.com/CSUNetSec/mrtrib/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPrefix(t *testing.T, s string) addr.Prefix {
	t.Helper()
	p, err := addr.ParsePrefix(s)
	require.NoError(t, err)
	return p
}

func TestFriendlyDuration(t *testing.T) {
	assert.Equal(t, "45s", render.FriendlyDuration(45*time.Second))
	assert.Equal(t, "5m00s", render.FriendlyDuration(5*time.Minute))
	assert.Equal(t, "2h00m00s", render.FriendlyDuration(2*time.Hour))
	assert.Equal(t, "1d00h00m", render.FriendlyDuration(24*time.Hour))
}

func TestCSVRender(t *testing.T) {
	entries := []mrtfmt.RibEntry{
		{
			Attributes: []bgpattr.PathAttribute{
				{Kind: bgpattr.KindAsPath, AsPath: bgpattr.AsPath{
					Segments: []bgpattr.AsPathSegment{{Ordered: true, Asns: []uint32{1, 2}}},
				}},
				{Kind: bgpattr.KindOrigin, Origin: 0},
			},
		},
	}
	var buf bytes.Buffer
	render.CSV(&buf, "10.0.0.0/8", entries)
	out := buf.String()
	assert.Contains(t, out, "route/plen|neighbor")
	assert.Contains(t, out, "10.0.0.0/8")
	assert.Contains(t, out, "1 2 i")
}

func TestUniqueTopLevel(t *testing.T) {
	prefixes := []addr.Prefix{
		mustPrefix(t, "10.0.0.0/8"),
		mustPrefix(t, "10.0.0.0/24"),  // covered by 10.0.0.0/8
		mustPrefix(t, "10.1.0.0/16"),  // covered by 10.0.0.0/8
		mustPrefix(t, "192.168.0.0/16"),
	}
	out := render.UniqueTopLevel(prefixes)
	var got []string
	for _, p := range out {
		got = append(got, p.String())
	}
	assert.ElementsMatch(t, []string{"10.0.0.0/8", "192.168.0.0/16"}, got)
}
