package task

import "encoding/json"

// Task is a unit of scrape work carried on a queue stream. The type name
// doubles as the stream discriminator.
type Task interface {
	TaskType() string
	TaskValue() ([]byte, error)
}

func marshalTask(t any) ([]byte, error) {
	return json.Marshal(t)
}

// Unmarshal decodes a queued payload back into its concrete task type.
func Unmarshal[T Task](data []byte) (T, error) {
	var t T
	err := json.Unmarshal(data, &t)
	return t, err
}
