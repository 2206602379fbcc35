package placeholder

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Content 占位文件的固定内容
const Content = "# Placeholder icon file\n"

type Writer interface {
	Write(path string) error
}

type localWriter struct {
	perm os.FileMode
}

func NewWriter() Writer {
	return &localWriter{perm: 0o644}
}

// Write 写入占位文件，必要时创建父目录。
func (w *localWriter) Write(path string) error {
	if path == "" {
		return errors.New("placeholder path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create placeholder directory")
	}
	if err := os.WriteFile(path, []byte(Content), w.perm); err != nil {
		return errors.Wrapf(err, "failed to write placeholder %s", path)
	}
	logrus.Infof("Created placeholder %s", path)
	return nil
}

// IsPlaceholder 判断内容是否与占位文件完全一致
func IsPlaceholder(data []byte) bool {
	return string(data) == Content
}
