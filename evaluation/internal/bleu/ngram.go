//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//

package bleu

import (
	"fmt"
	"strconv"
	"strings"
)

// ngram identifies a contiguous token span. Each token is stored as
// "<byte length>:<token>", so distinct token sequences never share a key
// whatever characters the tokens contain.
type ngram string

// ngramKey builds the key of the n tokens starting at start.
func ngramKey(tokens []string, start, n int) (ngram, error) {
	if n <= 0 {
		return "", fmt.Errorf("invalid ngram order: %d", n)
	}
	if start < 0 || start > len(tokens)-n {
		return "", fmt.Errorf("ngram window [%d, %d) out of range for %d tokens", start, start+n, len(tokens))
	}
	var b strings.Builder
	for _, tok := range tokens[start : start+n] {
		b.WriteString(strconv.Itoa(len(tok)))
		b.WriteByte(':')
		b.WriteString(tok)
	}
	return ngram(b.String()), nil
}

// countNGrams builds the multiset of all n-grams in tokens.
// It returns an empty multiset when tokens is shorter than n.
func countNGrams(tokens []string, n int) (map[ngram]int, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid ngram order: %d", n)
	}
	if len(tokens) < n {
		return map[ngram]int{}, nil
	}
	counts := make(map[ngram]int, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		key, err := ngramKey(tokens, i, n)
		if err != nil {
			return nil, err
		}
		counts[key]++
	}
	return counts, nil
}

// modifiedPrecision returns the number of hypothesis n-grams found in the
// reference, clipping each distinct n-gram to its reference count.
func modifiedPrecision(reference, hypothesis []string, n int) (int, error) {
	hypCounts, err := countNGrams(hypothesis, n)
	if err != nil {
		return 0, err
	}
	if len(hypCounts) == 0 {
		return 0, nil
	}
	refCounts, err := countNGrams(reference, n)
	if err != nil {
		return 0, err
	}
	matches := 0
	for key, hypCnt := range hypCounts {
		refCnt, ok := refCounts[key]
		if !ok {
			continue
		}
		matches += min(hypCnt, refCnt)
	}
	return matches, nil
}
