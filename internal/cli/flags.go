package cli

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/arbor/internal/models"
)

// DateLayout is the layout accepted by date flags
const DateLayout = "2006-01-02"

// ParseID extracts a positive id from a flag
func ParseID(cmd *cobra.Command, flagName string) (int, error) {
	id, err := cmd.Flags().GetInt(flagName)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", flagName)
	}
	return id, nil
}

// OptionalInt returns the flag's value, or nil when it was not given
func OptionalInt(cmd *cobra.Command, flagName string) (*int, error) {
	if !cmd.Flags().Changed(flagName) {
		return nil, nil
	}
	v, err := cmd.Flags().GetInt(flagName)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	return &v, nil
}

// OptionalBool returns the flag's value, or nil when it was not given
func OptionalBool(cmd *cobra.Command, flagName string) (*bool, error) {
	if !cmd.Flags().Changed(flagName) {
		return nil, nil
	}
	v, err := cmd.Flags().GetBool(flagName)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	return &v, nil
}

// ParseDate reads a YYYY-MM-DD or RFC 3339 flag. An empty flag yields nil.
// With endOfDay set, a bare date resolves to its last instant so that the
// bound includes the whole day.
func ParseDate(cmd *cobra.Command, flagName string, endOfDay bool) (*time.Time, error) {
	raw, err := cmd.Flags().GetString(flagName)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(DateLayout, raw, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%s must be a date like 2024-01-31, got %q", flagName, raw)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// ParseForestType accepts the English or service name of a forest type
func ParseForestType(raw string) (models.ForestType, error) {
	f := models.ParseForestType(raw)
	if f != models.ForestOther {
		return f, nil
	}
	trimmed := strings.TrimSpace(raw)
	if strings.EqualFold(trimmed, models.ForestOther.String()) || strings.EqualFold(trimmed, models.ForestOther.WireName()) {
		return f, nil
	}

	names := make([]string, 0, len(models.ForestTypes()))
	for _, t := range models.ForestTypes() {
		names = append(names, strings.ToLower(t.String()))
	}
	return f, fmt.Errorf("unknown forest type %q (expected one of: %s)", raw, strings.Join(names, ", "))
}

// Confirm asks a yes/no question on cmd's streams. Anything but y or yes is a no.
func Confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s (y/N): ", prompt)
	response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
