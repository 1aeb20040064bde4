package fuzzer

import (
	"encoding/json"
	"os"
)

// appendRoundLog appends one JSON-encoded record as a line to path,
// mirroring the chaos runner's appendLog helper.
func appendRoundLog(path string, record roundRecord) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = f.Write(data)
	return err
}
