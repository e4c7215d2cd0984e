package repository

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/shopspring/decimal"
	"github.com/templui/goalboard/internal/model"
	"github.com/templui/goalboard/internal/storage"
)

//go:embed schema/goal.json
var goalSchema []byte

var (
	ErrGoalNotFound  = errors.New("goal not found")
	ErrRecordInvalid = errors.New("stored goal record is invalid")
)

// GoalRepository persists the whole goal collection as one JSON document.
type GoalRepository interface {
	// Load never fails: a missing or unreadable document is an empty collection.
	Load(ctx context.Context) []*model.Goal
	Save(ctx context.Context, goals []*model.Goal) error
}

type goalRepository struct {
	slot   storage.Slot
	schema *jsonschema.Schema
}

func NewGoalRepository(slot storage.Slot) (GoalRepository, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true

	err := compiler.AddResource("goal.json", bytes.NewReader(goalSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to add goal schema: %w", err)
	}

	schema, err := compiler.Compile("goal.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile goal schema: %w", err)
	}

	return &goalRepository{slot: slot, schema: schema}, nil
}

// goalRecord is the stored shape of a goal. Keys match the browser app's
// localStorage format so existing exports load unchanged.
type goalRecord struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Type          string      `json:"type"`
	StartDate     string      `json:"startDate"`
	Deadline      string      `json:"deadline"`
	CheckInPerson string      `json:"checkInPerson"`
	CheckInEmail  string      `json:"checkInEmail"`
	TargetAmount  json.Number `json:"targetAmount"`
	CurrentAmount json.Number `json:"currentAmount"`
	Status        string      `json:"status"`
	Category      string      `json:"category"`
	CreatedAt     string      `json:"createdAt"`
}

func (r *goalRepository) Load(ctx context.Context) []*model.Goal {
	data, err := r.slot.Read(ctx)
	if errors.Is(err, storage.ErrSlotEmpty) {
		slog.Info("no stored goals, starting empty")
		return []*model.Goal{}
	}
	if err != nil {
		slog.Warn("failed to read stored goals, starting empty", "error", err)
		return []*model.Goal{}
	}

	var raws []json.RawMessage
	err = json.Unmarshal(data, &raws)
	if err != nil {
		slog.Warn("stored goals are not a JSON array, starting empty", "error", err)
		return []*model.Goal{}
	}

	goals := make([]*model.Goal, 0, len(raws))
	for i, raw := range raws {
		goal, err := r.decode(raw)
		if err != nil {
			slog.Warn("dropping stored goal", "index", i, "error", err)
			continue
		}
		goals = append(goals, goal)
	}

	slog.Debug("goals loaded", "count", len(goals), "dropped", len(raws)-len(goals))
	return goals
}

// decode validates one stored record and converts it. Records whose dates
// cannot be parsed are rejected rather than given placeholder dates.
func (r *goalRepository) decode(raw json.RawMessage) (*model.Goal, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecordInvalid, err)
	}

	err = r.schema.Validate(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecordInvalid, err)
	}

	var rec goalRecord
	err = json.Unmarshal(raw, &rec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecordInvalid, err)
	}

	return rec.toModel()
}

func (rec goalRecord) toModel() (*model.Goal, error) {
	goal := &model.Goal{
		ID:            rec.ID,
		Name:          rec.Name,
		Description:   rec.Description,
		Type:          rec.Type,
		Category:      model.Category(rec.Category),
		CheckInPerson: rec.CheckInPerson,
		CheckInEmail:  rec.CheckInEmail,
		Status:        model.Status(rec.Status),
	}

	var err error
	if rec.StartDate != "" {
		goal.StartDate, err = model.ParseDate(rec.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: goal %s start date: %v", ErrRecordInvalid, rec.ID, err)
		}
	}

	goal.Deadline, err = model.ParseDate(rec.Deadline)
	if err != nil {
		return nil, fmt.Errorf("%w: goal %s deadline: %v", ErrRecordInvalid, rec.ID, err)
	}

	goal.CreatedAt, err = time.Parse(time.RFC3339Nano, rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: goal %s created at: %v", ErrRecordInvalid, rec.ID, err)
	}

	goal.TargetAmount, err = decimal.NewFromString(rec.TargetAmount.String())
	if err != nil {
		return nil, fmt.Errorf("%w: goal %s target amount: %v", ErrRecordInvalid, rec.ID, err)
	}

	goal.CurrentAmount, err = decimal.NewFromString(rec.CurrentAmount.String())
	if err != nil {
		return nil, fmt.Errorf("%w: goal %s current amount: %v", ErrRecordInvalid, rec.ID, err)
	}

	return goal, nil
}

func fromModel(g *model.Goal) goalRecord {
	return goalRecord{
		ID:            g.ID,
		Name:          g.Name,
		Description:   g.Description,
		Type:          g.Type,
		StartDate:     g.StartDate.String(),
		Deadline:      g.Deadline.String(),
		CheckInPerson: g.CheckInPerson,
		CheckInEmail:  g.CheckInEmail,
		TargetAmount:  json.Number(g.TargetAmount.String()),
		CurrentAmount: json.Number(g.CurrentAmount.String()),
		Status:        string(g.Status),
		Category:      string(g.Category),
		CreatedAt:     g.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// Encode renders goals as the stored JSON document.
func Encode(goals []*model.Goal) ([]byte, error) {
	records := make([]goalRecord, 0, len(goals))
	for _, g := range goals {
		records = append(records, fromModel(g))
	}

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode goals: %w", err)
	}
	return data, nil
}

func (r *goalRepository) Save(ctx context.Context, goals []*model.Goal) error {
	data, err := Encode(goals)
	if err != nil {
		return err
	}

	err = r.slot.Write(ctx, data)
	if err != nil {
		return fmt.Errorf("failed to write goals: %w", err)
	}

	return nil
}
