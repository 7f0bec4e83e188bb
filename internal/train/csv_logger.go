package train

import (
	"encoding/csv"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/FlavioCFOliveira/nnet/internal/net"
)

// CSVLogger writes one row per epoch to a CSV file: the epoch, its error
// and the seconds elapsed since training began.
type CSVLogger struct {
	BaseCallback
	Filename string
	Append   bool

	file   *os.File
	writer *csv.Writer
	start  time.Time
}

func NewCSVLogger(filename string, append bool) *CSVLogger {
	return &CSVLogger{
		Filename: filename,
		Append:   append,
	}
}

func (c *CSVLogger) OnTrainBegin(n *net.Network) {
	mode := os.O_CREATE | os.O_WRONLY
	if c.Append {
		mode |= os.O_APPEND
	} else {
		mode |= os.O_TRUNC
	}

	file, err := os.OpenFile(c.Filename, mode, 0o644)
	if err != nil {
		slog.Error("csv logger: open", "file", c.Filename, "error", err)
		return
	}
	c.file = file
	c.writer = csv.NewWriter(file)
	c.start = time.Now()

	info, err := file.Stat()
	if err == nil && (info.Size() == 0 || !c.Append) {
		c.write([]string{"epoch", "error", "time_seconds"})
	}
}

func (c *CSVLogger) OnEpochEnd(p Progress, n *net.Network) {
	if c.writer == nil {
		return
	}
	c.write([]string{
		strconv.Itoa(p.Epoch),
		strconv.FormatFloat(p.Error, 'f', 6, 64),
		strconv.FormatFloat(time.Since(c.start).Seconds(), 'f', 2, 64),
	})
}

func (c *CSVLogger) write(record []string) {
	if err := c.writer.Write(record); err != nil {
		slog.Error("csv logger: write", "file", c.Filename, "error", err)
	}
	c.writer.Flush()
}

func (c *CSVLogger) OnTrainEnd(n *net.Network) {
	if c.file == nil {
		return
	}
	c.writer.Flush()
	if err := c.file.Close(); err != nil {
		slog.Error("csv logger: close", "file", c.Filename, "error", err)
	}
	c.file = nil
	c.writer = nil
}
