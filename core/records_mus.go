package core

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the catalog records. Score fields of Post are
// computed at ranking time and are not encoded.

var (
	// IDMUS serializes ID values.
	IDMUS = idMUS{}
	// CreatorMUS serializes Creator values.
	CreatorMUS = creatorMUS{}
	// PostMUS serializes Post values without their score fields.
	PostMUS = postMUS{}
	// SignalMUS serializes Signal values.
	SignalMUS = signalMUS{}
)

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	u, n, err := varint.Uint64.Unmarshal(bs)
	return ID(u), n, err
}

func (s idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

type creatorMUS struct{}

func (s creatorMUS) Marshal(v Creator, bs []byte) (n int) {
	n = ord.String.Marshal(v.ID, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.Handle, bs[n:])
	n += ord.String.Marshal(v.Avatar, bs[n:])
	n += ord.String.Marshal(v.Gender, bs[n:])
	n += ord.String.Marshal(v.Location, bs[n:])
	n += ord.String.Marshal(v.Platform, bs[n:])
	n += varint.Int64.Marshal(v.Followers, bs[n:])
	n += varint.Float64.Marshal(v.EngagementRate, bs[n:])
	n += marshalStrings(v.Topics, bs[n:])
	n += ord.String.Marshal(v.Bio, bs[n:])
	return n
}

func (s creatorMUS) Unmarshal(bs []byte) (v Creator, n int, err error) {
	r := &musReader{bs: bs}
	v.ID = r.readString()
	v.Name = r.readString()
	v.Handle = r.readString()
	v.Avatar = r.readString()
	v.Gender = r.readString()
	v.Location = r.readString()
	v.Platform = r.readString()
	v.Followers = r.readInt64()
	v.EngagementRate = r.readFloat64()
	v.Topics = r.readStrings()
	v.Bio = r.readString()
	return v, r.n, r.err
}

func (s creatorMUS) Size(v Creator) (size int) {
	size = ord.String.Size(v.ID)
	size += ord.String.Size(v.Name)
	size += ord.String.Size(v.Handle)
	size += ord.String.Size(v.Avatar)
	size += ord.String.Size(v.Gender)
	size += ord.String.Size(v.Location)
	size += ord.String.Size(v.Platform)
	size += varint.Int64.Size(v.Followers)
	size += varint.Float64.Size(v.EngagementRate)
	size += sizeStrings(v.Topics)
	size += ord.String.Size(v.Bio)
	return size
}

type postMUS struct{}

func (s postMUS) Marshal(v Post, bs []byte) (n int) {
	n = ord.String.Marshal(v.ID, bs)
	n += ord.String.Marshal(v.CreatorID, bs[n:])
	n += ord.String.Marshal(v.Thumbnail, bs[n:])
	n += ord.String.Marshal(string(v.ContentType), bs[n:])
	n += ord.String.Marshal(v.Caption, bs[n:])
	n += varint.Int64.Marshal(v.PostedAt.UnixMicro(), bs[n:])
	n += varint.Int64.Marshal(v.Stats.Views, bs[n:])
	n += varint.Int64.Marshal(v.Stats.Likes, bs[n:])
	n += varint.Int64.Marshal(v.Stats.Comments, bs[n:])
	n += varint.Int64.Marshal(v.Stats.Shares, bs[n:])
	n += varint.Int.Marshal(len(v.Signals), bs[n:])
	for _, sig := range v.Signals {
		n += SignalMUS.Marshal(sig, bs[n:])
	}
	return n
}

func (s postMUS) Unmarshal(bs []byte) (v Post, n int, err error) {
	r := &musReader{bs: bs}
	v.ID = r.readString()
	v.CreatorID = r.readString()
	v.Thumbnail = r.readString()
	v.ContentType = ContentType(r.readString())
	v.Caption = r.readString()
	v.PostedAt = time.UnixMicro(r.readInt64()).UTC()
	v.Stats.Views = r.readInt64()
	v.Stats.Likes = r.readInt64()
	v.Stats.Comments = r.readInt64()
	v.Stats.Shares = r.readInt64()
	count := r.readLength()
	if count > 0 {
		v.Signals = make([]Signal, count)
		for i := range v.Signals {
			v.Signals[i] = r.readSignal()
		}
	}
	return v, r.n, r.err
}

func (s postMUS) Size(v Post) (size int) {
	size = ord.String.Size(v.ID)
	size += ord.String.Size(v.CreatorID)
	size += ord.String.Size(v.Thumbnail)
	size += ord.String.Size(string(v.ContentType))
	size += ord.String.Size(v.Caption)
	size += varint.Int64.Size(v.PostedAt.UnixMicro())
	size += varint.Int64.Size(v.Stats.Views)
	size += varint.Int64.Size(v.Stats.Likes)
	size += varint.Int64.Size(v.Stats.Comments)
	size += varint.Int64.Size(v.Stats.Shares)
	size += varint.Int.Size(len(v.Signals))
	for _, sig := range v.Signals {
		size += SignalMUS.Size(sig)
	}
	return size
}

type signalMUS struct{}

func (s signalMUS) Marshal(v Signal, bs []byte) (n int) {
	n = ord.String.Marshal(string(v.Type), bs)
	n += varint.Float64.Marshal(v.Confidence, bs[n:])
	n += varint.Int.Marshal(v.Frequency, bs[n:])
	n += ord.String.Marshal(string(v.Density), bs[n:])
	n += ord.String.Marshal(v.Excerpt, bs[n:])
	n += ord.String.Marshal(v.Timestamp, bs[n:])
	n += ord.String.Marshal(v.Context, bs[n:])
	return n
}

func (s signalMUS) Unmarshal(bs []byte) (v Signal, n int, err error) {
	r := &musReader{bs: bs}
	v = r.readSignal()
	return v, r.n, r.err
}

func (s signalMUS) Size(v Signal) (size int) {
	size = ord.String.Size(string(v.Type))
	size += varint.Float64.Size(v.Confidence)
	size += varint.Int.Size(v.Frequency)
	size += ord.String.Size(string(v.Density))
	size += ord.String.Size(v.Excerpt)
	size += ord.String.Size(v.Timestamp)
	size += ord.String.Size(v.Context)
	return size
}

func marshalStrings(vs []string, bs []byte) (n int) {
	n = varint.Int.Marshal(len(vs), bs)
	for _, s := range vs {
		n += ord.String.Marshal(s, bs[n:])
	}
	return n
}

func sizeStrings(vs []string) (size int) {
	size = varint.Int.Size(len(vs))
	for _, s := range vs {
		size += ord.String.Size(s)
	}
	return size
}

// musReader decodes a sequence of fields, stopping at the first error.
type musReader struct {
	bs  []byte
	n   int
	err error
}

func (r *musReader) readString() string {
	if r.err != nil {
		return ""
	}
	v, n, err := ord.String.Unmarshal(r.bs[r.n:])
	r.n += n
	r.err = err
	return v
}

func (r *musReader) readInt64() int64 {
	if r.err != nil {
		return 0
	}
	v, n, err := varint.Int64.Unmarshal(r.bs[r.n:])
	r.n += n
	r.err = err
	return v
}

func (r *musReader) readFloat64() float64 {
	if r.err != nil {
		return 0
	}
	v, n, err := varint.Float64.Unmarshal(r.bs[r.n:])
	r.n += n
	r.err = err
	return v
}

func (r *musReader) readInt() int {
	if r.err != nil {
		return 0
	}
	v, n, err := varint.Int.Unmarshal(r.bs[r.n:])
	r.n += n
	r.err = err
	return v
}

// readLength reads a collection length and rejects values the remaining
// bytes cannot possibly hold.
func (r *musReader) readLength() int {
	l := r.readInt()
	if r.err != nil {
		return 0
	}
	if l < 0 || l > len(r.bs)-r.n {
		r.err = fmt.Errorf("%w: length %d at offset %d", ErrMalformedRecord, l, r.n)
		return 0
	}
	return l
}

func (r *musReader) readStrings() []string {
	count := r.readLength()
	if count == 0 {
		return nil
	}
	vs := make([]string, count)
	for i := range vs {
		vs[i] = r.readString()
	}
	return vs
}

func (r *musReader) readSignal() (v Signal) {
	v.Type = SignalType(r.readString())
	v.Confidence = r.readFloat64()
	v.Frequency = r.readInt()
	v.Density = Density(r.readString())
	v.Excerpt = r.readString()
	v.Timestamp = r.readString()
	v.Context = r.readString()
	return v
}
