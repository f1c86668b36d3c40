package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"livingclock/internal/core/tasks"
)

const taskFileName = "tasks.yaml"

type yamlTaskFile struct {
	Tasks []yamlTask `yaml:"tasks"`
}

type yamlTask struct {
	ID        string `yaml:"id"`
	Text      string `yaml:"text"`
	Completed bool   `yaml:"completed"`
}

// TaskFile stores the to-do list as a YAML document.
type TaskFile struct {
	path string
}

// NewTaskFile returns a task store inside dir.
func NewTaskFile(dir string) *TaskFile {
	return &TaskFile{path: filepath.Join(dir, taskFileName)}
}

// Path returns the task file location.
func (file *TaskFile) Path() string {
	return file.path
}

// Load reads every item in stored order. A document without a tasks key,
// including an empty file, yields nil items.
func (file *TaskFile) Load() ([]tasks.Item, error) {
	rawData, err := os.ReadFile(file.path)
	if err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}

	var fileData yamlTaskFile
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return nil, fmt.Errorf("parse task yaml: %w", err)
	}
	if fileData.Tasks == nil {
		return nil, nil
	}

	items := make([]tasks.Item, 0, len(fileData.Tasks))
	for _, task := range fileData.Tasks {
		items = append(items, tasks.Item{ID: task.ID, Text: task.Text, Completed: task.Completed})
	}
	return items, nil
}

// Save replaces the stored list.
func (file *TaskFile) Save(items []tasks.Item) error {
	if err := ensureDir(filepath.Dir(file.path)); err != nil {
		return err
	}

	fileData := yamlTaskFile{Tasks: make([]yamlTask, 0, len(items))}
	for _, item := range items {
		fileData.Tasks = append(fileData.Tasks, yamlTask{ID: item.ID, Text: item.Text, Completed: item.Completed})
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal task yaml: %w", err)
	}
	if err := writeFileAtomic(file.path, serialized); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	return nil
}
