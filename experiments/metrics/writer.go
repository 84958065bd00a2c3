package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type BattleRecord struct {
	ID int
	BattleMetric
}

type RoundRecord struct {
	Battle int // BattleRecord.ID
	RoundMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> and writes records into it.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string { return w.baseDir }

func (w *Writer) WriteBattleRecords(records []BattleRecord) error {
	header := []string{"id", "seed", "outcome", "rounds", "start_time", "end_time", "duration",
		"actions", "cards_chosen", "cards_played", "energy_spent", "damage", "shield_added", "healed", "defeats",
		"reshuffles", "rejections", "fallbacks"}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.FormatUint(record.Seed, 10),
			record.Outcome,
			strconv.Itoa(record.Rounds),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.Actions),
			strconv.Itoa(record.CardsChosen),
			strconv.Itoa(record.CardsPlayed),
			strconv.Itoa(record.EnergySpent),
			strconv.Itoa(record.Damage),
			strconv.Itoa(record.ShieldAdded),
			strconv.Itoa(record.Healed),
			strconv.Itoa(record.Defeats),
			strconv.Itoa(record.Reshuffles),
			strconv.Itoa(record.Rejections),
			strconv.Itoa(record.Fallbacks),
		})
	}

	return w.write("battle_records.csv", header, rows)
}

func (w *Writer) WriteRoundRecords(records []RoundRecord) error {
	header := []string{"battle", "round", "drawn", "reshuffled", "cards_chosen", "cards_played", "energy_spent",
		"rejections", "fallback", "actions", "damage", "shield_added", "healed", "defeats",
		"player_alive", "enemy_alive"}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Battle),
			strconv.Itoa(record.Round),
			strconv.Itoa(record.Drawn),
			strconv.FormatBool(record.Reshuffled),
			strconv.Itoa(record.CardsChosen),
			strconv.Itoa(record.CardsPlayed),
			strconv.Itoa(record.EnergySpent),
			strconv.Itoa(record.Rejections),
			strconv.FormatBool(record.Fallback),
			strconv.Itoa(record.Actions),
			strconv.Itoa(record.Damage),
			strconv.Itoa(record.ShieldAdded),
			strconv.Itoa(record.Healed),
			strconv.Itoa(record.Defeats),
			strconv.Itoa(record.PlayerAlive),
			strconv.Itoa(record.EnemyAlive),
		})
	}

	return w.write("round_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}

	return nil
}
