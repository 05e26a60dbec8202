package dto

import (
	"testing"
	"time"

	"tujitume_backend/internal/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func baseGig() models.Gig {
	budget := 100.0
	bt := models.BudgetTypeFixed
	location := "Nairobi"
	deadline := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return models.Gig{
		BaseModel:      models.BaseModel{ID: "gig-1"},
		OwnerID:        "owner-1",
		Title:          "Fix the fence",
		Description:    "The fence in the back garden needs fixing",
		Budget:         &budget,
		BudgetType:     &bt,
		Location:       &location,
		SkillsRequired: pq.StringArray{"carpentry"},
		Deadline:       &deadline,
	}
}

func TestGigPatch_Apply(t *testing.T) {
	deadline := time.Date(2027, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		patch GigPatch
		want  func(g *models.Gig)
	}{
		{
			name:  "empty patch leaves gig unchanged",
			patch: GigPatch{},
			want:  func(g *models.Gig) {},
		},
		{
			name:  "title",
			patch: GigPatch{Title: ptr("Paint the fence")},
			want:  func(g *models.Gig) { g.Title = "Paint the fence" },
		},
		{
			name:  "description",
			patch: GigPatch{Description: ptr("Two coats of paint on the whole fence")},
			want:  func(g *models.Gig) { g.Description = "Two coats of paint on the whole fence" },
		},
		{
			name:  "budget",
			patch: GigPatch{Budget: ptr(250.5)},
			want:  func(g *models.Gig) { g.Budget = ptr(250.5) },
		},
		{
			name:  "budget type",
			patch: GigPatch{BudgetType: ptr("hourly")},
			want:  func(g *models.Gig) { g.BudgetType = ptr(models.BudgetTypeHourly) },
		},
		{
			name:  "location",
			patch: GigPatch{Location: ptr("Mombasa")},
			want:  func(g *models.Gig) { g.Location = ptr("Mombasa") },
		},
		{
			name:  "skills",
			patch: GigPatch{SkillsRequired: ptr([]string{"painting", "carpentry"})},
			want:  func(g *models.Gig) { g.SkillsRequired = pq.StringArray{"painting", "carpentry"} },
		},
		{
			name:  "empty skills clears the list",
			patch: GigPatch{SkillsRequired: ptr([]string{})},
			want:  func(g *models.Gig) { g.SkillsRequired = pq.StringArray{} },
		},
		{
			name:  "deadline",
			patch: GigPatch{Deadline: &deadline},
			want:  func(g *models.Gig) { g.Deadline = &deadline },
		},
		{
			name: "several fields at once",
			patch: GigPatch{
				Title:  ptr("Paint the fence"),
				Budget: ptr(80.0),
			},
			want: func(g *models.Gig) {
				g.Title = "Paint the fence"
				g.Budget = ptr(80.0)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := baseGig()
			want := baseGig()
			tt.want(&want)

			tt.patch.Apply(&got)

			assert.Equal(t, want.Title, got.Title)
			assert.Equal(t, want.Description, got.Description)
			assert.Equal(t, want.Budget, got.Budget)
			assert.Equal(t, want.BudgetType, got.BudgetType)
			assert.Equal(t, want.Location, got.Location)
			assert.Equal(t, []string(want.SkillsRequired), []string(got.SkillsRequired))
			assert.Equal(t, want.Deadline, got.Deadline)
			assert.Equal(t, "gig-1", got.ID)
			assert.Equal(t, "owner-1", got.OwnerID)
			assert.False(t, got.IsCompleted)
		})
	}
}

func TestGigPatch_ApplyDoesNotAlias(t *testing.T) {
	skills := []string{"painting"}
	budget := 90.0
	location := "Kisumu"
	patch := GigPatch{SkillsRequired: &skills, Budget: &budget, Location: &location}

	gig := baseGig()
	patch.Apply(&gig)

	skills[0] = "plumbing"
	budget = 1
	location = "Nakuru"

	assert.Equal(t, []string{"painting"}, []string(gig.SkillsRequired))
	require.NotNil(t, gig.Budget)
	assert.Equal(t, 90.0, *gig.Budget)
	require.NotNil(t, gig.Location)
	assert.Equal(t, "Kisumu", *gig.Location)
}

func TestGigPatch_IsEmpty(t *testing.T) {
	assert.True(t, (&GigPatch{}).IsEmpty())
	assert.False(t, (&GigPatch{Title: ptr("x")}).IsEmpty())
	assert.False(t, (&GigPatch{SkillsRequired: ptr([]string{})}).IsEmpty())
	assert.False(t, (&GigPatch{Deadline: ptr(time.Now())}).IsEmpty())
}

func TestUserPatch_Apply(t *testing.T) {
	base := func() models.User {
		return models.User{
			ID:     "uid-1",
			Name:   "Alice",
			Bio:    ptr("Gardener"),
			Skills: pq.StringArray{"gardening"},
		}
	}

	tests := []struct {
		name  string
		patch UserPatch
		want  func(u *models.User)
	}{
		{
			name:  "empty patch leaves user unchanged",
			patch: UserPatch{},
			want:  func(u *models.User) {},
		},
		{
			name:  "name",
			patch: UserPatch{Name: ptr("Alicia")},
			want:  func(u *models.User) { u.Name = "Alicia" },
		},
		{
			name:  "bio",
			patch: UserPatch{Bio: ptr("Landscaper")},
			want:  func(u *models.User) { u.Bio = ptr("Landscaper") },
		},
		{
			name:  "skills",
			patch: UserPatch{Skills: ptr([]string{"pruning", "mowing"})},
			want:  func(u *models.User) { u.Skills = pq.StringArray{"pruning", "mowing"} },
		},
		{
			name:  "phone",
			patch: UserPatch{Phone: ptr("+254700000000")},
			want:  func(u *models.User) { u.Phone = ptr("+254700000000") },
		},
		{
			name:  "location",
			patch: UserPatch{Location: ptr("Eldoret")},
			want:  func(u *models.User) { u.Location = ptr("Eldoret") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := base()
			want := base()
			tt.want(&want)

			tt.patch.Apply(&got)

			assert.Equal(t, want.Name, got.Name)
			assert.Equal(t, want.Bio, got.Bio)
			assert.Equal(t, []string(want.Skills), []string(got.Skills))
			assert.Equal(t, want.Phone, got.Phone)
			assert.Equal(t, want.Location, got.Location)
			assert.Equal(t, "uid-1", got.ID)
		})
	}
}

func TestUserPatch_ApplyDoesNotAlias(t *testing.T) {
	skills := []string{"pruning"}
	patch := UserPatch{Skills: &skills}

	user := models.User{ID: "uid-1"}
	patch.Apply(&user)
	skills[0] = "welding"

	assert.Equal(t, []string{"pruning"}, []string(user.Skills))
}

func TestUserPatch_IsEmpty(t *testing.T) {
	assert.True(t, (&UserPatch{}).IsEmpty())
	assert.False(t, (&UserPatch{Phone: ptr("")}).IsEmpty())
	assert.False(t, (&UserPatch{Skills: ptr([]string{})}).IsEmpty())
}
