package testutil

import (
	"context"
	"testing"
	"time"

	types "github.com/medibridge/medibridge-backend/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func SeedCondition(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Condition {
	tb.Helper()
	c := &types.Condition{
		Name:        name,
		Description: "description of " + name,
		Summary:     "summary",
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed condition: %v", err)
	}
	return c
}

func SeedExclusionMethod(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.ExclusionMethod {
	tb.Helper()
	m := &types.ExclusionMethod{
		Name:        name,
		Description: "description of " + name,
		Steps:       datatypes.JSON([]byte(`["step one","step two"]`)),
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed exclusion method: %v", err)
	}
	return m
}

func SeedTreatmentPlan(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.TreatmentPlan {
	tb.Helper()
	p := &types.TreatmentPlan{
		Name:              name,
		Description:       "description of " + name,
		Medications:       datatypes.JSON([]byte(`["med"]`)),
		Procedures:        datatypes.JSON([]byte(`[]`)),
		LifestyleFactors:  datatypes.JSON([]byte(`[]`)),
		Contraindications: datatypes.JSON([]byte(`[]`)),
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed treatment plan: %v", err)
	}
	return p
}

func SeedDisease(tb testing.TB, ctx context.Context, tx *gorm.DB, cui, name string) *types.Disease {
	tb.Helper()
	d := &types.Disease{
		CUI:        cui,
		Name:       name,
		Alias:      "",
		Definition: "definition of " + name,
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed disease: %v", err)
	}
	return d
}

func SeedSymptom(tb testing.TB, ctx context.Context, tx *gorm.DB, cui, name string) *types.Symptom {
	tb.Helper()
	s := &types.Symptom{
		CUI:  cui,
		Name: name,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed symptom: %v", err)
	}
	return s
}

func SeedConversation(tb testing.TB, ctx context.Context, tx *gorm.DB, title string, startedAt time.Time) *types.Conversation {
	tb.Helper()
	c := &types.Conversation{
		Title:     title,
		StartedAt: startedAt,
		Progress:  datatypes.JSON([]byte(`{}`)),
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed conversation: %v", err)
	}
	return c
}

func SeedMessage(tb testing.TB, ctx context.Context, tx *gorm.DB, conversationID uint, role, content string, sentAt time.Time) *types.Message {
	tb.Helper()
	m := &types.Message{
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		SentAt:         sentAt,
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed message: %v", err)
	}
	return m
}
