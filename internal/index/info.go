package index

import (
	"encoding/json"
	"os"
)

// Info contains information about the index file
type Info struct {
	Path         string
	Size         int64
	TotalEntries int
	// Missing counts entries whose file no longer exists
	Missing int
}

// GetInfo returns information about the index file without locking it
func GetInfo(indexPath string) (*Info, error) {
	stat, err := os.Stat(indexPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Info{Path: indexPath}, nil
		}
		return nil, err
	}

	result := &Info{
		Path: indexPath,
		Size: stat.Size(),
	}

	data, err := os.ReadFile(indexPath)
	if err != nil {
		return result, nil // Return partial info
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return result, nil // Return partial info
	}

	result.TotalEntries = len(entries)
	for _, e := range entries {
		if _, err := os.Stat(e.Path); err != nil {
			result.Missing++
		}
	}

	return result, nil
}
