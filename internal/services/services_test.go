package services

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddka-tech/ddka-backend/internal/models"
)

func TestGradeForScore(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "A"},
		{71, "A"},
		{70, "B"},
		{61, "B"},
		{60, "C"},
		{50, "C"},
		{49, ""},
		{0, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GradeForScore(tt.score), "score %d", tt.score)
	}
}

func TestNewCardNumberFormat(t *testing.T) {
	idNo, err := NewCardNumber("DDKA", func(string) (bool, error) { return false, nil })
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^DDKA-\d{4}$`), idNo)
}

func TestNewCardNumberRetriesOnCollision(t *testing.T) {
	var seen []string
	idNo, err := NewCardNumber("DDKA", func(candidate string) (bool, error) {
		seen = append(seen, candidate)
		// First three candidates collide.
		return len(seen) <= 3, nil
	})
	require.NoError(t, err)
	assert.Len(t, seen, 4)
	assert.Equal(t, seen[3], idNo)
}

func TestNewCardNumberGivesUpAfterBoundedAttempts(t *testing.T) {
	calls := 0
	_, err := NewCardNumber("DDKA", func(string) (bool, error) {
		calls++
		return true, nil
	})
	assert.ErrorIs(t, err, ErrCardExhausted)
	assert.Equal(t, cardNumberAttempts, calls)
}

func TestNewCardNumberPropagatesExistsError(t *testing.T) {
	storeErr := errors.New("down")
	_, err := NewCardNumber("DDKA", func(string) (bool, error) { return false, storeErr })
	assert.ErrorIs(t, err, storeErr)
}

func TestApplyReviewStatusAssignsCardOnce(t *testing.T) {
	calls := 0
	nextNumber := func() (string, error) {
		calls++
		return "DDKA-4321", nil
	}

	player := &models.Player{Status: models.StatusPending}
	assigned, err := ApplyReviewStatus(player, models.StatusApproved, nextNumber)
	require.NoError(t, err)
	assert.True(t, assigned)
	assert.Equal(t, "DDKA-4321", player.IDNo)

	// Re-approving keeps the number that was already issued.
	assigned, err = ApplyReviewStatus(player, models.StatusApproved, nextNumber)
	require.NoError(t, err)
	assert.False(t, assigned)
	assert.Equal(t, "DDKA-4321", player.IDNo)
	assert.Equal(t, 1, calls)
}

func TestApplyReviewStatusSkipsNumberingOutsideApproval(t *testing.T) {
	player := &models.Player{Status: models.StatusPending}
	assigned, err := ApplyReviewStatus(player, models.StatusRejected, func() (string, error) {
		t.Fatal("number generator should not run for a rejection")
		return "", nil
	})
	require.NoError(t, err)
	assert.False(t, assigned)
	assert.Equal(t, models.StatusRejected, player.Status)
	assert.Empty(t, player.IDNo)
}

func TestApplyReviewStatusPropagatesGeneratorError(t *testing.T) {
	player := &models.Player{Status: models.StatusPending}
	genErr := errors.New("exhausted")
	_, err := ApplyReviewStatus(player, models.StatusApproved, func() (string, error) {
		return "", genErr
	})
	assert.ErrorIs(t, err, genErr)
	assert.Empty(t, player.IDNo)
}

func TestCheckRoleChangeRejectsLastSuperadminDemotion(t *testing.T) {
	err := CheckRoleChange(models.AdminRoleSuperadmin, models.AdminRoleAdmin, func() (int64, error) {
		return 1, nil
	})
	assert.ErrorIs(t, err, ErrLastSuperadmin)
}

func TestCheckRoleChangeAllowsDemotionWithAnotherSuperadmin(t *testing.T) {
	err := CheckRoleChange(models.AdminRoleSuperadmin, models.AdminRoleAdmin, func() (int64, error) {
		return 2, nil
	})
	assert.NoError(t, err)
}

func TestCheckRoleChangeOnlyCountsForDemotions(t *testing.T) {
	counts := 0
	count := func() (int64, error) {
		counts++
		return 1, nil
	}

	assert.NoError(t, CheckRoleChange(models.AdminRoleAdmin, models.AdminRoleSuperadmin, count))
	assert.NoError(t, CheckRoleChange(models.AdminRoleSuperadmin, models.AdminRoleSuperadmin, count))
	assert.NoError(t, CheckRoleChange(models.AdminRoleAdmin, models.AdminRoleAdmin, count))
	assert.Zero(t, counts)
}

func TestCheckRoleChangePropagatesCountError(t *testing.T) {
	countErr := errors.New("count failed")
	err := CheckRoleChange(models.AdminRoleSuperadmin, models.AdminRoleAdmin, func() (int64, error) {
		return 0, countErr
	})
	assert.ErrorIs(t, err, countErr)
}

func TestPhoneMatches(t *testing.T) {
	tests := []struct {
		provided string
		stored   string
		want     bool
	}{
		{"9876543210", "9876543210", true},
		{"+91 98765 43210", "9876543210", true},
		{"9876543210", "+91-9876543210", true},
		{"98765-43210", "098 7654 3210", true},
		{"9876543211", "9876543210", false},
		{"", "9876543210", false},
		{"9876543210", "", false},
		{"abc", "def", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, phoneMatches(tt.provided, tt.stored), "%q vs %q", tt.provided, tt.stored)
	}
}

func TestLastN(t *testing.T) {
	assert.Equal(t, "43210", lastN("9876543210", 5))
	assert.Equal(t, "123", lastN("123", 10))
	assert.Equal(t, "", lastN("", 10))
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := generateToken("secret", time.Hour, "abc-123", "player", nil)
	require.NoError(t, err)

	claims, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", claims.ID)
	assert.Equal(t, "player", claims.Role)
	assert.Empty(t, claims.DonorPhone)
}

func TestTokenDonorClaims(t *testing.T) {
	token, err := generateToken("secret", time.Hour, "donor@example.com", RoleDonor, map[string]any{"donorPhone": "9876543210"})
	require.NoError(t, err)

	claims, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, RoleDonor, claims.Role)
	assert.Equal(t, "9876543210", claims.DonorPhone)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := generateToken("secret", time.Hour, "abc", "player", nil)
	require.NoError(t, err)

	_, err = ParseToken("other", token)
	assert.Error(t, err)
}

func TestTokenRejectsExpired(t *testing.T) {
	token, err := generateToken("secret", -time.Minute, "abc", "player", nil)
	require.NoError(t, err)

	_, err = ParseToken("secret", token)
	assert.Error(t, err)
}
