package option

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/pingcap/log"
	"go.uber.org/zap"
)

type Option struct {
	Name string
	Size string
}

const (
	kilobyte   = 1024
	megabyte   = kilobyte * 1024
	sizeFormat = "%.3f MB"
	suffix     = ".csv"
)

func new(name string, size int64) Option {
	sizeMB := float64(size) / megabyte
	return Option{
		Name: name,
		Size: fmt.Sprintf(sizeFormat, sizeMB),
	}
}

// PickCSV lists the csv files in the working directory and prompts for one.
func PickCSV() (string, error) {
	options, err := getAll()
	if err != nil {
		return "", fmt.Errorf("get csv files failed: %w", err)
	}
	i, _, err := newOptionPrompt(options)
	if err != nil {
		return "", fmt.Errorf("render promptui failed: %w", err)
	}
	return options[i].Name, nil
}

func getAll() ([]Option, error) {
	entries, err := os.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var options []Option
	for _, entry := range entries {
		if skip(entry) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			log.Warn("failed to get file info",
				zap.String("option", entry.Name()), zap.Error(err))
			continue
		}
		options = append(options,
			new(entry.Name(), info.Size()))
	}

	if len(options) == 0 {
		return nil, fmt.Errorf("no csv file found")
	}
	return options, nil
}

func skip(entry os.DirEntry) bool {
	return entry.IsDir() || filepath.Ext(entry.Name()) != suffix
}

func newOptionPrompt(options []Option) (int, string, error) {

	items := make([]string, 0)

	for _, o := range options {
		item := fmt.Sprintf("%s (%s)", o.Name, o.Size)
		items = append(items, item)
	}
	prompt := promptui.Select{
		Label: "🔍 select csv file to analyze",
		Items: items,
		Size:  10,
	}
	return prompt.Run()
}
