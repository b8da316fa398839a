// Copyright 2026 GraphTrace Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graphtext builds linear-chain acceptor graphs out of text,
// using the pkoukk/tiktoken-go BPE tokenizer to turn a string into the
// token id sequence that becomes each arc's label.
//
// # Basic usage
//
//	enc, err := graphtext.NewEncoder("cl100k_base")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	g, err := enc.FromText("hello graph")
package graphtext

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/graphtrace/gtn/internal/graph"
)

// Encoder wraps a tiktoken-go BPE encoding, turning text or a token
// id slice into a linear-chain graph.Graph acceptor.
type Encoder struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// NewEncoder loads the named tiktoken encoding (e.g. "cl100k_base",
// "p50k_base", "r50k_base").
func NewEncoder(encodingName string) (*Encoder, error) {
	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("graphtext: failed to load tiktoken encoding %q: %w", encodingName, err)
	}
	return &Encoder{encoding: encoding, name: encodingName}, nil
}

// NewEncoderForModel loads the tiktoken encoding associated with an
// OpenAI model name (e.g. "gpt-4").
func NewEncoderForModel(modelName string) (*Encoder, error) {
	encoding, err := tiktoken.EncodingForModel(modelName)
	if err != nil {
		return nil, fmt.Errorf("graphtext: failed to load tiktoken for model %q: %w", modelName, err)
	}
	return &Encoder{encoding: encoding, name: modelName}, nil
}

// Name returns the underlying encoding or model name this Encoder
// was constructed with.
func (e *Encoder) Name() string { return e.name }

// Encode tokenizes text into a slice of token ids without building a
// graph, for callers that want to inspect or edit the sequence first.
func (e *Encoder) Encode(text string) []int32 {
	tokens := e.encoding.Encode(text, nil, nil)
	ids := make([]int32, len(tokens))
	for i, tok := range tokens {
		ids[i] = int32(tok)
	}
	return ids
}

// FromText tokenizes text and builds the resulting linear-chain
// acceptor graph.
func (e *Encoder) FromText(text string) (*graph.Graph, error) {
	return FromTokens(e.Encode(text)), nil
}

// tokenLabel maps a tiktoken id to an arc label. tiktoken ids are
// zero-based, and 0 collides with graph.EPSILON, so every id is
// shifted up by one: label 0 stays reserved for epsilon, and label
// id+1 recovers token id via TokenID.
func tokenLabel(id int32) int { return int(id) + 1 }

// TokenID recovers the tiktoken id a FromTokens arc label was built
// from. It panics if label is graph.EPSILON, which FromTokens never
// produces for a real token.
func TokenID(label int) int32 {
	if label == graph.EPSILON {
		panic("graphtext: EPSILON is not a token label")
	}
	return int32(label - 1)
}

// FromTokens builds a linear-chain acceptor over the given token ids:
// node 0 is the sole start state, one arc per token labels (tokenLabel(id),
// tokenLabel(id)) with weight 0, and the final node is the sole accept
// state. Token ids are shifted by one so that no real token can ever
// produce an EPSILON-labeled arc; use TokenID to map a label back to
// its original token id. An empty token slice yields a single node
// that is both start and accept, the acceptor for the empty string.
func FromTokens(tokens []int32) *graph.Graph {
	g := graph.New()
	n := g.AddNode(true, len(tokens) == 0)
	for i, tok := range tokens {
		label := tokenLabel(tok)
		accept := i == len(tokens)-1
		next := g.AddNode(false, accept)
		g.MustAddArc(n, next, label, label, 0)
		n = next
	}
	return g
}
