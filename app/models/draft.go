package models

import "strings"

// DefaultTone is used when a draft request names no tone.
const DefaultTone = "professional"

func (in *DraftInput) Validate() error {
	return validate.Struct(in)
}

func (in *DraftInput) Trim() {
	in.Topic = strings.TrimSpace(in.Topic)
	in.Tone = strings.TrimSpace(in.Tone)
	if in.Tone == "" {
		in.Tone = DefaultTone
	}
}
