package gtfsrt

import (
	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// DecodeFeed parses raw bytes as a serialized GTFS-RT FeedMessage.
func DecodeFeed(b []byte) (*gtfsrtpb.FeedMessage, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(b, &fm); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &fm, nil
}

// DecodeAll parses each non-nil buffer independently and merges the results.
// The whole operation fails on the first invalid buffer.
func DecodeAll(buffers ...[]byte) (*gtfsrtpb.FeedMessage, error) {
	feeds := make([]*gtfsrtpb.FeedMessage, 0, len(buffers))
	for _, b := range buffers {
		if b == nil {
			continue
		}
		fm, err := DecodeFeed(b)
		if err != nil {
			return nil, err
		}
		feeds = append(feeds, fm)
	}
	return MergeFeeds(feeds...), nil
}

// MergeFeeds concatenates the entity lists of the given feeds into one
// FeedMessage, preserving each source's internal entity order. The header of
// the first feed carrying one is kept.
func MergeFeeds(feeds ...*gtfsrtpb.FeedMessage) *gtfsrtpb.FeedMessage {
	merged := &gtfsrtpb.FeedMessage{}
	for _, fm := range feeds {
		if fm == nil {
			continue
		}
		if merged.Header == nil && fm.Header != nil {
			merged.Header = fm.Header
		}
		merged.Entity = append(merged.Entity, fm.Entity...)
	}
	return merged
}
