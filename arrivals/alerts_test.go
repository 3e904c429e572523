package arrivals

import (
	"testing"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"github.com/nickcwilkins/gtfsrt-arrivals/internal/testutil"
)

func TestBuildAlertIndex(t *testing.T) {
	feed := testutil.Feed(
		testutil.Alert("a1", "Route detour", []string{"42"}, nil),
		testutil.Alert("a2", "Stop closed", nil, []string{"S1"}),
		testutil.Alert("a3", "Elevator outage", []string{"42", "77"}, []string{"S1"}),
	)

	idx := BuildAlertIndex(feed)

	assert.Len(t, idx.All(), 3)

	forRoute := idx.ForRoute("42")
	require.Len(t, forRoute, 2)
	assert.Equal(t, "Route detour", forRoute[0].Header)
	assert.Equal(t, "Elevator outage", forRoute[1].Header)

	forStop := idx.ForStop("S1")
	require.Len(t, forStop, 2)

	assert.Empty(t, idx.ForRoute("999"))
	assert.Empty(t, idx.ForTrip("T1"))
}

func TestTranslatedText_PrefersUntaggedTranslation(t *testing.T) {
	ts := &gtfsrtpb.TranslatedString{
		Translation: []*gtfsrtpb.TranslatedString_Translation{
			{Text: proto.String("bonjour"), Language: proto.String("fr")},
			{Text: proto.String("hello")},
		},
	}
	assert.Equal(t, "hello", translatedText(ts))
}

func TestTranslatedText_FallsBackToFirst(t *testing.T) {
	ts := &gtfsrtpb.TranslatedString{
		Translation: []*gtfsrtpb.TranslatedString_Translation{
			{Text: proto.String("bonjour"), Language: proto.String("fr")},
			{Text: proto.String("hola"), Language: proto.String("es")},
		},
	}
	assert.Equal(t, "bonjour", translatedText(ts))

	assert.Equal(t, "", translatedText(nil))
}
