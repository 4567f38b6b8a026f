package client

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	stateDirName     = ".veriflow"
	lastPlanFileName = "last_plan.md"
)

var getStateDirFunc = defaultGetStateDir

func defaultGetStateDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return filepath.Join(cwd, stateDirName), nil
}

// GetStateDir returns the session state directory.
func GetStateDir() (string, error) {
	return getStateDirFunc()
}

// SaveLastPlan writes the raw plan text to the session state file, replacing
// any previous plan.
func SaveLastPlan(raw string) error {
	stateDir, err := GetStateDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	path := filepath.Join(stateDir, lastPlanFileName)
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	return nil
}

// LoadLastPlan reads the most recently saved plan. Returns an error telling
// the user to run plan first when no plan has been saved.
func LoadLastPlan() (string, error) {
	stateDir, err := GetStateDir()
	if err != nil {
		return "", err
	}

	path := filepath.Join(stateDir, lastPlanFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("no saved test plan found (run 'veriflow plan' first)")
	}
	if err != nil {
		return "", fmt.Errorf("failed to read saved plan: %w", err)
	}
	return string(data), nil
}
