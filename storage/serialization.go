// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"

	"github.com/poiesic/scout/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return id, nil
}

// MarshalCreator serializes a Creator to bytes.
func MarshalCreator(creator *core.Creator) []byte {
	buf := make([]byte, core.CreatorMUS.Size(*creator))
	core.CreatorMUS.Marshal(*creator, buf)
	return buf
}

// UnmarshalCreator deserializes a Creator from bytes.
func UnmarshalCreator(data []byte) (*core.Creator, error) {
	creator, _, err := core.CreatorMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &creator, nil
}

// MarshalPost serializes a Post to bytes. Score fields are not encoded.
func MarshalPost(post *core.Post) []byte {
	buf := make([]byte, core.PostMUS.Size(*post))
	core.PostMUS.Marshal(*post, buf)
	return buf
}

// UnmarshalPost deserializes a Post from bytes.
func UnmarshalPost(data []byte) (*core.Post, error) {
	post, _, err := core.PostMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &post, nil
}
