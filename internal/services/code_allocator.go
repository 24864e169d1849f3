package services

import (
	"context"
	"fmt"
	"log"

	"github.com/c0sm0thecoder/scorecard-api/internal/repositories"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	RoomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	RoomCodeLength   = 8
)

// CodeGenerator returns a candidate room code.
type CodeGenerator func() (string, error)

// NanoidCodeGenerator draws RoomCodeLength symbols uniformly from
// RoomCodeAlphabet using crypto/rand.
func NanoidCodeGenerator() (string, error) {
	return gonanoid.Generate(RoomCodeAlphabet, RoomCodeLength)
}

type CodeAllocator struct {
	generate CodeGenerator
}

func NewCodeAllocator(generate CodeGenerator) *CodeAllocator {
	if generate == nil {
		generate = NanoidCodeGenerator
	}
	return &CodeAllocator{generate: generate}
}

// Allocate returns a code that no room, active or not, holds at the time of
// the check. There is no retry cap; the loop ends only when ctx does.
func (a *CodeAllocator) Allocate(ctx context.Context, rooms repositories.RoomRepository) (string, error) {
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		code, err := a.generate()
		if err != nil {
			return "", fmt.Errorf("failed to generate room code: %w", err)
		}
		exists, err := rooms.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
		log.Printf("room code %s already taken (attempt %d)", code, attempt)
	}
}
