// Package catalog stores roster files in SQLite so archetypes, skills and
// teams can be edited outside the YAML files.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"anima/catalog/migrations"
	"anima/roster"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const fallbackSkillKey = "fallback_skill"

// Store persists a roster catalog in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens the SQLite catalog at path and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("catalog path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveFile replaces the whole catalog with f.
func (s *Store) SaveFile(ctx context.Context, f *roster.File) (err error) {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"team_units", "teams", "skills", "archetypes", "settings"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, a := range f.Archetypes {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO archetypes (code, name, hp, speed, attack, defense, description) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			a.Code, a.Name, a.HP, a.Speed, a.Attack, a.Defense, a.Description)
		if err != nil {
			return fmt.Errorf("insert archetype %q: %w", a.Code, err)
		}
	}
	for _, sk := range f.Skills {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO skills (code, name, kind, cost, effect, target, text) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			sk.Code, sk.Name, sk.Kind, sk.Cost, sk.Effect, sk.Target, sk.Text)
		if err != nil {
			return fmt.Errorf("insert skill %q: %w", sk.Code, err)
		}
	}
	for i, t := range f.Teams {
		if _, err = tx.ExecContext(ctx, `INSERT INTO teams (name, position) VALUES (?, ?)`, t.Name, i); err != nil {
			return fmt.Errorf("insert team %q: %w", t.Name, err)
		}
		for j, u := range t.Units {
			var slot sql.NullInt64
			if u.Slot != nil {
				slot = sql.NullInt64{Int64: int64(*u.Slot), Valid: true}
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO team_units (team_name, position, name, archetype_code, slot, hp, skill_codes) VALUES (?, ?, ?, ?, ?, ?, ?)`,
				t.Name, j, u.Name, u.Archetype, slot, u.HP, strings.Join(u.Skills, ","))
			if err != nil {
				return fmt.Errorf("insert unit %q of team %q: %w", u.Name, t.Name, err)
			}
		}
	}
	if f.FallbackSkill != "" {
		_, err = tx.ExecContext(ctx, `INSERT INTO settings (key, value) VALUES (?, ?)`, fallbackSkillKey, f.FallbackSkill)
		if err != nil {
			return fmt.Errorf("insert fallback skill: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	log.Debug().Msgf("catalog saved: %d archetypes, %d skills, %d teams", len(f.Archetypes), len(f.Skills), len(f.Teams))
	return nil
}

// LoadFile reads the whole catalog back as a validated roster file.
func (s *Store) LoadFile(ctx context.Context) (*roster.File, error) {
	f := &roster.File{}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT code, name, hp, speed, attack, defense, description FROM archetypes ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query archetypes: %w", err)
	}
	for rows.Next() {
		var a roster.Archetype
		if err := rows.Scan(&a.Code, &a.Name, &a.HP, &a.Speed, &a.Attack, &a.Defense, &a.Description); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan archetype: %w", err)
		}
		f.Archetypes = append(f.Archetypes, a)
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("read archetypes: %w", err)
	}

	rows, err = s.sqlDB.QueryContext(ctx, `SELECT code, name, kind, cost, effect, target, text FROM skills ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query skills: %w", err)
	}
	for rows.Next() {
		var sk roster.Skill
		if err := rows.Scan(&sk.Code, &sk.Name, &sk.Kind, &sk.Cost, &sk.Effect, &sk.Target, &sk.Text); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		f.Skills = append(f.Skills, sk)
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("read skills: %w", err)
	}

	if err := s.loadTeams(ctx, f); err != nil {
		return nil, err
	}

	err = s.sqlDB.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, fallbackSkillKey).Scan(&f.FallbackSkill)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("query fallback skill: %w", err)
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return f, nil
}

func (s *Store) loadTeams(ctx context.Context, f *roster.File) error {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT t.name, u.name, u.archetype_code, u.slot, u.hp, u.skill_codes
FROM teams t JOIN team_units u ON u.team_name = t.name
ORDER BY t.position, u.position`)
	if err != nil {
		return fmt.Errorf("query teams: %w", err)
	}
	for rows.Next() {
		var (
			team   string
			u      roster.UnitDef
			slot   sql.NullInt64
			skills string
		)
		if err := rows.Scan(&team, &u.Name, &u.Archetype, &slot, &u.HP, &skills); err != nil {
			rows.Close()
			return fmt.Errorf("scan team unit: %w", err)
		}
		if slot.Valid {
			v := int(slot.Int64)
			u.Slot = &v
		}
		u.Skills = splitCodes(skills)

		if n := len(f.Teams); n == 0 || f.Teams[n-1].Name != team {
			f.Teams = append(f.Teams, roster.TeamDef{Name: team})
		}
		last := &f.Teams[len(f.Teams)-1]
		last.Units = append(last.Units, u)
	}
	if err := closeRows(rows); err != nil {
		return fmt.Errorf("read teams: %w", err)
	}
	return nil
}

// splitCodes parses a comma separated skill list, dropping blanks.
func splitCodes(s string) []string {
	var codes []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	return rows.Close()
}
