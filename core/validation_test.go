package core

import (
	"errors"
	"testing"
)

func validSignal() Signal {
	return Signal{
		Type:       SignalCaption,
		Confidence: 90,
		Frequency:  1,
		Density:    DensityModerate,
		Excerpt:    "espresso",
	}
}

func TestValidateSignal(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Signal)
		nilSig  bool
		wantErr error
	}{
		{name: "valid signal", mutate: func(s *Signal) {}},
		{name: "personal note", mutate: func(s *Signal) { s.Type = SignalPersonalNote }},
		{name: "nil signal", nilSig: true, wantErr: ErrInvalidSignal},
		{name: "unknown type", mutate: func(s *Signal) { s.Type = "smell" }, wantErr: ErrInvalidSignalType},
		{name: "unknown density", mutate: func(s *Signal) { s.Density = "dense" }, wantErr: ErrInvalidDensity},
		{name: "zero frequency", mutate: func(s *Signal) { s.Frequency = 0 }, wantErr: ErrInvalidFrequency},
		{name: "confidence above 100", mutate: func(s *Signal) { s.Confidence = 101 }, wantErr: ErrInvalidConfidence},
		{name: "negative confidence", mutate: func(s *Signal) { s.Confidence = -1 }, wantErr: ErrInvalidConfidence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.nilSig {
				err = ValidateSignal(nil)
			} else {
				s := validSignal()
				tt.mutate(&s)
				err = ValidateSignal(&s)
			}

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateSignal() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateSignal() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidSignal) {
				t.Errorf("ValidateSignal() error = %v, want wrapped %v", err, ErrInvalidSignal)
			}
		})
	}
}

func TestValidatePost(t *testing.T) {
	valid := func() *Post {
		return &Post{
			ID:          "p1",
			CreatorID:   "c1",
			ContentType: ContentReel,
			Signals:     []Signal{validSignal()},
		}
	}

	tests := []struct {
		name    string
		post    *Post
		wantErr error
	}{
		{name: "valid post", post: valid()},
		{name: "valid post without signals", post: func() *Post { p := valid(); p.Signals = nil; return p }()},
		{name: "nil post", post: nil, wantErr: ErrInvalidPost},
		{name: "empty id", post: func() *Post { p := valid(); p.ID = ""; return p }(), wantErr: ErrEmptyID},
		{name: "empty creator", post: func() *Post { p := valid(); p.CreatorID = ""; return p }(), wantErr: ErrEmptyID},
		{name: "unknown content type", post: func() *Post { p := valid(); p.ContentType = "Tweet"; return p }(), wantErr: ErrInvalidContentType},
		{name: "negative views", post: func() *Post { p := valid(); p.Stats.Views = -1; return p }(), wantErr: ErrNegativeMetric},
		{name: "invalid signal", post: func() *Post { p := valid(); p.Signals[0].Frequency = 0; return p }(), wantErr: ErrInvalidFrequency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePost(tt.post)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidatePost() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePost() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCreator(t *testing.T) {
	tests := []struct {
		name    string
		creator *Creator
		wantErr error
	}{
		{name: "valid creator", creator: &Creator{ID: "c1", Name: "Ava"}},
		{name: "nil creator", creator: nil, wantErr: ErrInvalidCreator},
		{name: "empty id", creator: &Creator{Name: "Ava"}, wantErr: ErrEmptyID},
		{name: "empty name", creator: &Creator{ID: "c1"}, wantErr: ErrEmptyName},
		{name: "negative followers", creator: &Creator{ID: "c1", Name: "Ava", Followers: -5}, wantErr: ErrNegativeMetric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreator(tt.creator)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateCreator() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateCreator() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateOperator(t *testing.T) {
	for _, op := range []Operator{OperatorRoot, OperatorAnd, OperatorOr, OperatorNot} {
		if err := ValidateOperator(op); err != nil {
			t.Errorf("ValidateOperator(%q) error = %v, want nil", op, err)
		}
	}
	if err := ValidateOperator("XOR"); !errors.Is(err, ErrInvalidOperator) {
		t.Errorf("ValidateOperator(XOR) error = %v, want %v", err, ErrInvalidOperator)
	}
}

func TestIsValidSortKey(t *testing.T) {
	if !IsValidSortKey(SortRecency) {
		t.Error("IsValidSortKey(recency) = false, want true")
	}
	if IsValidSortKey("random") {
		t.Error("IsValidSortKey(random) = true, want false")
	}
}
