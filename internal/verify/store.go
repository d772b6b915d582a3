package verify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ddka-tech/ddka-backend/internal/models"
	"gorm.io/gorm"
)

// Store is the GORM-backed Directory. Each lookup issues exactly one query
// against the entity's table.
type Store struct {
	db        *gorm.DB
	regPrefix string
}

func NewStore(db *gorm.DB, registrationCodePrefix string) *Store {
	return &Store{db: db, regPrefix: registrationCodePrefix}
}

func (s *Store) PlayerByIdentifier(ctx context.Context, identifier string) (*models.Player, error) {
	conds := Conditions(identifier, playerExactFields, playerDigitFields)
	return firstMatch[models.Player](ctx, s.db, conds, "player", identifier)
}

func (s *Store) OfficialByIdentifier(ctx context.Context, identifier string) (*models.TechnicalOfficial, error) {
	conds := Conditions(identifier, officialExactFields, officialDigitFields)
	if suffix := RegistrationSuffix(s.regPrefix, identifier); suffix != "" {
		conds = append(conds, registrationSuffixCondition(suffix))
	}
	return firstMatch[models.TechnicalOfficial](ctx, s.db, conds, "official", identifier)
}

func (s *Store) InstitutionByIdentifier(ctx context.Context, identifier string) (*models.Institution, error) {
	conds := Conditions(identifier, institutionExactFields, institutionDigitFields)
	return firstMatch[models.Institution](ctx, s.db, conds, "institution", identifier)
}

func (s *Store) PlayerByTransactionID(ctx context.Context, txn string) (*models.Player, error) {
	txn = strings.TrimSpace(txn)
	if txn == "" {
		return nil, nil
	}
	conds := []Condition{{Expr: "LOWER(transaction_id) = ?", Args: []any{strings.ToLower(txn)}}}
	return firstMatch[models.Player](ctx, s.db, conds, "player", txn)
}

func (s *Store) PlayerByContact(ctx context.Context, email, phone string) (*models.Player, error) {
	conds := contactConditions("email", email, "phone", phone)
	return firstMatch[models.Player](ctx, s.db, conds, "player", email)
}

func (s *Store) OfficialByContact(ctx context.Context, email, mobile string) (*models.TechnicalOfficial, error) {
	conds := contactConditions("email", email, "mobile", mobile)
	return firstMatch[models.TechnicalOfficial](ctx, s.db, conds, "official", email)
}

func contactConditions(emailField, email, phoneField, phone string) []Condition {
	var conds []Condition
	if v := strings.TrimSpace(email); v != "" {
		conds = append(conds, Condition{Expr: "LOWER(" + emailField + ") = ?", Args: []any{strings.ToLower(v)}})
	}
	if v := strings.TrimSpace(phone); v != "" {
		conds = append(conds, Condition{Expr: "LOWER(" + phoneField + ") = ?", Args: []any{strings.ToLower(v)}})
	}
	return conds
}

// firstMatch runs one OR'd query, fetching up to two rows so a data-quality
// ambiguity (two records claiming the same identifier) is logged instead of
// passing silently. The first row still wins, as it always has.
func firstMatch[T any](ctx context.Context, db *gorm.DB, conds []Condition, entity, identifier string) (*T, error) {
	if len(conds) == 0 {
		return nil, nil
	}

	q := db.WithContext(ctx).Where(conds[0].Expr, conds[0].Args...)
	for _, c := range conds[1:] {
		q = q.Or(c.Expr, c.Args...)
	}

	var rows []T
	if err := q.Limit(2).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%s lookup failed: %w", entity, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if len(rows) > 1 {
		slog.Warn("ambiguous identifier match", "entity", entity, "identifier", identifier)
	}
	return &rows[0], nil
}
