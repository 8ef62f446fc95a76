package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/olympics-logistics/internal/model"
)

// MemberRepo reads members, their derived role and their medal facts.
type MemberRepo struct {
	db *sql.DB
}

// NewMemberRepo returns a MemberRepo bound to db.
func NewMemberRepo(db *sql.DB) *MemberRepo { return &MemberRepo{db: db} }

// MemberCredentials pairs a member with the stored password credential.
type MemberCredentials struct {
	Member   model.Member
	Password string
}

// memberColumns must stay in the order scanMember expects.
const memberColumns = `m.member_id, m.title, m.given_names, m.family_name, c.country_name, p.place_name,
       a.member_id, o.member_id`

const memberJoins = `FROM member m
JOIN country c ON c.country_code = m.country_code
JOIN place p ON p.place_id = m.accommodation
LEFT JOIN athlete a ON a.member_id = m.member_id
LEFT JOIN official o ON o.member_id = m.member_id`

func scanMember(sc rowScanner, extra ...any) (model.Member, error) {
	var m model.Member
	var athlete, official sql.NullString
	dest := append([]any{&m.MemberID, &m.Title, &m.FirstName, &m.FamilyName, &m.CountryName, &m.Residence, &athlete, &official}, extra...)
	if err := sc.Scan(dest...); err != nil {
		return model.Member{}, err
	}
	m.MemberType = model.RoleOf(athlete.Valid, official.Valid)
	return m, nil
}

// GetCredentials returns the member and stored password, or nil when the
// member does not exist.
func (r *MemberRepo) GetCredentials(ctx context.Context, memberID string) (*MemberCredentials, error) {
	q := `SELECT ` + memberColumns + `, m.pass_word ` + memberJoins + ` WHERE m.member_id = ?`
	var cred MemberCredentials
	m, err := scanMember(r.db.QueryRowContext(ctx, q, memberID), &cred.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, Classify("member.getCredentials", err)
	}
	cred.Member = m
	return &cred, nil
}

// GetProfile returns the profile base fields with the number of bookings
// made for the member. Medal fields are left nil. Nil means no such member.
func (r *MemberRepo) GetProfile(ctx context.Context, memberID string) (*model.Profile, error) {
	q := `SELECT ` + memberColumns + `,
       (SELECT COUNT(*) FROM booking b WHERE b.booked_for = m.member_id) ` + memberJoins + `
WHERE m.member_id = ?`
	var p model.Profile
	m, err := scanMember(r.db.QueryRowContext(ctx, q, memberID), &p.NumBookings)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, Classify("member.getProfile", err)
	}
	p.Member = m
	return &p, nil
}

// IndividualMedals counts the athlete's medals from individual results.
func (r *MemberRepo) IndividualMedals(ctx context.Context, memberID string) (model.MedalTally, error) {
	const q = `SELECT medal, COUNT(*) FROM participates
WHERE athlete_id = ? AND medal IS NOT NULL
GROUP BY medal`
	return r.tally(ctx, "member.individualMedals", q, memberID)
}

// TeamMedals counts the medals won by teams the athlete was a member of.
func (r *MemberRepo) TeamMedals(ctx context.Context, memberID string) (model.MedalTally, error) {
	const q = `SELECT t.medal, COUNT(*) FROM teammember tm
JOIN team t ON t.team_name = tm.team_name AND t.event_id = tm.event_id
WHERE tm.athlete_id = ? AND t.medal IS NOT NULL
GROUP BY t.medal`
	return r.tally(ctx, "member.teamMedals", q, memberID)
}

func (r *MemberRepo) tally(ctx context.Context, op, q, memberID string) (model.MedalTally, error) {
	var t model.MedalTally
	rows, err := r.db.QueryContext(ctx, q, memberID)
	if err != nil {
		return t, Classify(op, err)
	}
	defer rows.Close()
	for rows.Next() {
		var code sql.NullString
		var n int
		if err := rows.Scan(&code, &n); err != nil {
			return t, Classify(op, err)
		}
		medal, err := model.ParseMedal(stringPtr(code))
		if err != nil {
			return t, err
		}
		t.Add(medal, n)
	}
	return t, Classify(op, rows.Err())
}

// DisplayNameTx returns "Family, Given" for a member inside tx. The boolean
// is false when the member does not exist.
func (r *MemberRepo) DisplayNameTx(ctx context.Context, tx *sql.Tx, memberID string) (string, bool, error) {
	const q = `SELECT family_name, given_names FROM member WHERE member_id = ?`
	var family, given string
	err := tx.QueryRowContext(ctx, q, memberID).Scan(&family, &given)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, Classify("member.displayName", err)
	}
	return model.DisplayName(family, given), true, nil
}

// FindIDsByNameTx returns the ids of all members with the given family and
// given names, in id order.
func (r *MemberRepo) FindIDsByNameTx(ctx context.Context, tx *sql.Tx, family, given string) ([]string, error) {
	const q = `SELECT member_id FROM member WHERE family_name = ? AND given_names = ? ORDER BY member_id`
	rows, err := tx.QueryContext(ctx, q, family, given)
	if err != nil {
		return nil, Classify("member.findByName", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, Classify("member.findByName", err)
		}
		ids = append(ids, id)
	}
	return ids, Classify("member.findByName", rows.Err())
}
