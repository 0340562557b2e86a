package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/dealsense/dealsense/internal/domain/entities"
	"github.com/dealsense/dealsense/internal/testutil"
)

func seedMeeting(t *testing.T, db *gorm.DB) *entities.Meeting {
	t.Helper()
	client := &entities.Client{Name: "Acme"}
	require.NoError(t, db.Create(client).Error)
	meeting := &entities.Meeting{ClientID: client.ID, Transcript: "t"}
	require.NoError(t, db.Create(meeting).Error)
	return meeting
}

func TestCreateIfAbsentInserts(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewClassificationRepository(db)
	meeting := seedMeeting(t, db)

	stored, created, err := repo.CreateIfAbsent(context.Background(), &entities.Classification{
		TranscriptID: meeting.ID,
		Summary:      "first",
	})
	require.NoError(t, err)

	assert.True(t, created)
	assert.NotZero(t, stored.ID)
	assert.Equal(t, "first", stored.Summary)
}

func TestCreateIfAbsentAdoptsStoredWinner(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewClassificationRepository(db)
	meeting := seedMeeting(t, db)

	winner, created, err := repo.CreateIfAbsent(context.Background(), &entities.Classification{
		TranscriptID: meeting.ID,
		Summary:      "winner",
	})
	require.NoError(t, err)
	require.True(t, created)

	// a second writer racing on the same meeting must not overwrite
	adopted, created, err := repo.CreateIfAbsent(context.Background(), &entities.Classification{
		TranscriptID: meeting.ID,
		Summary:      "loser",
	})
	require.NoError(t, err)

	assert.False(t, created)
	assert.Equal(t, winner.ID, adopted.ID)
	assert.Equal(t, "winner", adopted.Summary)

	var count int64
	require.NoError(t, db.Model(&entities.Classification{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDistinctPains(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewClassificationRepository(db)

	first := seedMeeting(t, db)
	second := &entities.Meeting{ClientID: first.ClientID, Transcript: "t2"}
	require.NoError(t, db.Create(second).Error)

	require.NoError(t, db.Create(&entities.Classification{
		TranscriptID: first.ID,
		Pains:        datatypes.JSONSlice[string]{"pricing", "onboarding", ""},
	}).Error)
	require.NoError(t, db.Create(&entities.Classification{
		TranscriptID: second.ID,
		Pains:        datatypes.JSONSlice[string]{"pricing"},
	}).Error)

	pains, err := repo.DistinctPains(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"onboarding", "pricing"}, pains)
}
