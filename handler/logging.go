package handler

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kjk/common/filerotate"
	"github.com/kjk/common/httputil"
)

// AccessLog writes one line per request. Safe for concurrent use.
type AccessLog struct {
	file *filerotate.File
}

// NewAccessLog opens a daily-rotated log in dir, named access-YYYY-MM-DD.txt.
func NewAccessLog(dir string) (*AccessLog, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	daily := func(creationTime time.Time, now time.Time) string {
		if !creationTime.IsZero() && creationTime.Format("2006-01-02") == now.Format("2006-01-02") {
			return ""
		}
		return filepath.Join(absDir, "access-"+now.Format("2006-01-02")+".txt")
	}
	f, err := filerotate.New(&filerotate.Config{PathIfShouldRotate: daily})
	if err != nil {
		return nil, err
	}
	return &AccessLog{file: f}, nil
}

// Path is the file currently written to.
func (l *AccessLog) Path() string {
	return l.file.Path
}

func (l *AccessLog) Write(d []byte) (int, error) {
	return l.file.Write(d)
}

func (l *AccessLog) Close() error {
	return l.file.Close()
}

// LogRequests logs method, path, status, response size and duration of
// every request to the standard logger and, if out is not nil, to out.
func LogRequests(next http.Handler, out io.Writer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		cw := &httputil.CapturingResponseWriter{ResponseWriter: w}
		next.ServeHTTP(cw, r)

		status := cw.StatusCode
		if status == 0 {
			status = http.StatusOK
		}
		dur := time.Since(start)
		log.Printf("%s %s %d %s in %s", r.Method, r.URL.Path, status, humanize.Bytes(uint64(cw.Size)), dur)
		if out != nil {
			line := fmt.Sprintf("%s %s %s %s %d %d %d\n",
				start.UTC().Format(time.RFC3339), r.RemoteAddr, r.Method, r.URL.RequestURI(),
				status, cw.Size, dur.Microseconds())
			if _, err := io.WriteString(out, line); err != nil {
				log.Printf("access log: %v", err)
			}
		}
	})
}
