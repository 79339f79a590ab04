package history

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Text contract for git log output.
const (
	// LogFieldDelimiter separates the fields of one commit record.
	LogFieldDelimiter = "@@__CZ_DELIMITER__@@"
	// LogRecordSeparator terminates every commit record.
	LogRecordSeparator = "@@__CZ__@@"
)

// logFields are the git pretty-format placeholders of one commit record:
// hashes, author, committer, raw message and tag decorations.
var logFields = []string{"%H", "%h", "%an", "%ae", "%at", "%cn", "%ce", "%ct", "%B", "%D"}

// LogFormat is the --pretty value a collector must pass to git log, together
// with --decorate=short --decorate-refs=tags, for DecodeLog to read it.
var LogFormat = strings.Join(logFields, LogFieldDelimiter) + LogRecordSeparator

// TagRefFormat is the --format value for git for-each-ref refs/tags that
// DecodeTagRefs reads.
const TagRefFormat = "%(objecttype)\t%(objectname)\t%(refname:short)\t%(creator)"

// CommitRecord is the raw data of one commit as delivered by a collector.
type CommitRecord struct {
	LongHash  string
	ShortHash string

	AuthorName  string
	AuthorEmail string
	AuthorTime  int64

	CommitterName  string
	CommitterEmail string
	CommitterTime  int64

	// Message is the unwrapped subject, body and footers.
	Message string
	// TagNames lists the tags decorating the commit.
	TagNames []string
}

// TagRecord is the raw data of one tag as delivered by a collector.
type TagRecord struct {
	// ObjectType is "tag" for annotated tags and "commit" for lightweight ones.
	ObjectType string
	// ObjectName is the id of the commit the tag points at.
	ObjectName string
	Name       string

	CreatorName  string
	CreatorEmail string
	CreatorTime  int64
}

// Kind returns the tag kind encoded in ObjectType.
func (r TagRecord) Kind() TagKind {
	if r.ObjectType == "tag" {
		return Annotated
	}
	return Lightweight
}

// RecordError reports a collector record that does not follow the text contract.
type RecordError struct {
	Index   int // zero-based record index
	Field   string
	Message string
}

func (e *RecordError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("record %d: %s: %s", e.Index, e.Field, e.Message)
	}
	return fmt.Sprintf("record %d: %s", e.Index, e.Message)
}

// DecodeLog reads commit records written with LogFormat, newest first as git
// log prints them.
func DecodeLog(r io.Reader) ([]CommitRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading git log output: %w", err)
	}

	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return nil, nil
	}
	text = strings.TrimSuffix(text, LogRecordSeparator)
	chunks := strings.Split(text, LogRecordSeparator+"\n")

	records := make([]CommitRecord, 0, len(chunks))
	for i, chunk := range chunks {
		rec, err := decodeCommit(i, chunk)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeCommit(index int, chunk string) (CommitRecord, error) {
	fields := strings.Split(chunk, LogFieldDelimiter)
	if len(fields) != len(logFields) {
		return CommitRecord{}, &RecordError{
			Index:   index,
			Message: fmt.Sprintf("expected %d fields, got %d", len(logFields), len(fields)),
		}
	}

	authorTime, err := parseUnix(index, "author time", fields[4])
	if err != nil {
		return CommitRecord{}, err
	}
	committerTime, err := parseUnix(index, "committer time", fields[7])
	if err != nil {
		return CommitRecord{}, err
	}

	return CommitRecord{
		LongHash:       fields[0],
		ShortHash:      fields[1],
		AuthorName:     fields[2],
		AuthorEmail:    fields[3],
		AuthorTime:     authorTime,
		CommitterName:  fields[5],
		CommitterEmail: fields[6],
		CommitterTime:  committerTime,
		Message:        fields[8],
		TagNames:       ParseDecoration(fields[9]),
	}, nil
}

// ParseDecoration extracts tag names from a git %D decoration such as
// "tag: v1.0.0, tag: v1.0.1". Non-tag refs are ignored.
func ParseDecoration(decoration string) []string {
	decoration = strings.TrimSpace(decoration)
	if decoration == "" {
		return nil
	}
	var names []string
	for _, ref := range strings.Split(decoration, ",") {
		ref = strings.TrimSpace(ref)
		if name, ok := strings.CutPrefix(ref, "tag: "); ok && name != "" {
			names = append(names, name)
		}
	}
	return names
}

var creatorPattern = regexp.MustCompile(`^(.+) <(.*)> (\d+) (.+)$`)

// DecodeTagRefs reads tag records written with TagRefFormat, one per line.
func DecodeTagRefs(r io.Reader) ([]TagRecord, error) {
	var records []TagRecord
	scanner := bufio.NewScanner(r)
	index := 0
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		rec, err := decodeTagRef(index, line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
		index++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading git for-each-ref output: %w", err)
	}
	return records, nil
}

func decodeTagRef(index int, line string) (TagRecord, error) {
	parts := strings.Split(line, "\t")
	if len(parts) != 4 {
		return TagRecord{}, &RecordError{
			Index:   index,
			Message: fmt.Sprintf("expected 4 tab-separated fields, got %d", len(parts)),
		}
	}

	m := creatorPattern.FindStringSubmatch(parts[3])
	if m == nil {
		return TagRecord{}, &RecordError{
			Index:   index,
			Field:   "creator",
			Message: fmt.Sprintf("%q is not 'Name <email> unixtime tz'", parts[3]),
		}
	}
	unixTime, err := parseUnix(index, "creator time", m[3])
	if err != nil {
		return TagRecord{}, err
	}

	return TagRecord{
		ObjectType:   parts[0],
		ObjectName:   parts[1],
		Name:         parts[2],
		CreatorName:  m[1],
		CreatorEmail: m[2],
		CreatorTime:  unixTime,
	}, nil
}

func parseUnix(index int, field, s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, &RecordError{Index: index, Field: field, Message: fmt.Sprintf("%q is not a unix timestamp", s)}
	}
	return n, nil
}
