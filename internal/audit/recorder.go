// Package audit records create/update/delete mutations as immutable
// change log entries. Recording is best effort: a failed audit write is
// logged and swallowed so it can never abort the mutation it describes.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"project-tracker/internal/models"
)

// Sink persists change log entries. The store assigns the entry
// timestamp at write time.
type Sink interface {
	CreateChangeLog(ctx context.Context, entry *models.ChangeLog) error
}

// Payload carries the operation-specific snapshots for one entry.
// Build it with Created, Updated or Deleted; exactly one shape is
// populated per operation kind.
type Payload struct {
	createdData json.RawMessage
	before      json.RawMessage
	after       json.RawMessage
	deletedData json.RawMessage
	err         error
}

// Created snapshots the entity state of a create operation.
func Created(data any) Payload {
	raw, err := snapshot(data)
	return Payload{createdData: raw, err: err}
}

// Updated snapshots the pre- and post-mutation state of an update.
func Updated(before, after any) Payload {
	b, err := snapshot(before)
	if err != nil {
		return Payload{err: err}
	}
	a, err := snapshot(after)
	return Payload{before: b, after: a, err: err}
}

// Deleted snapshots the entity state removed by a delete operation.
func Deleted(data any) Payload {
	raw, err := snapshot(data)
	return Payload{deletedData: raw, err: err}
}

func snapshot(v any) (json.RawMessage, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return raw, nil
}

type Recorder struct {
	sink Sink
}

func NewRecorder(sink Sink) *Recorder {
	return &Recorder{sink: sink}
}

// Record writes one audit entry for a mutation on entity/entityID.
// It never returns an error: the mutation has already committed by the
// time Record runs, and audit logging must not block business writes.
// A crash between the mutation and Record loses the entry; that window
// is accepted.
func (r *Recorder) Record(ctx context.Context, entity string, entityID uint, op models.ChangeOperation, actorID string, p Payload) {
	if actorID == "" {
		actorID = models.UnknownActor
	}

	if p.err != nil {
		log.Printf("audit: %s %s/%d not recorded: %v", op, entity, entityID, p.err)
		return
	}

	entry := &models.ChangeLog{
		Entity:      entity,
		EntityID:    entityID,
		Operation:   op,
		ActorID:     actorID,
		CreatedData: p.createdData,
		Before:      p.before,
		After:       p.after,
		DeletedData: p.deletedData,
	}

	if err := r.sink.CreateChangeLog(ctx, entry); err != nil {
		log.Printf("audit: failed to record %s of %s/%d: %v", op, entity, entityID, err)
	}
}
