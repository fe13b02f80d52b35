// Package thumbnail assigns featured images to content records that lack
// one, and tracks records where no image or several candidate images were
// found.
package thumbnail

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Meta keys written by the assigner.
const (
	MetaThumbnailID    = "_thumbnail_id"
	MetaNoThumbnail    = "_no_thumbnail_found"
	MetaMultipleImages = "_multiple_images_found"
)

// Store is the record storage the assigner works against.
type Store interface {
	RecordsLackingMeta(recordType string, absent []string, limit int) ([]int64, int, error)
	RecordsWithMeta(recordType string, keys []string) ([]int64, error)
	AttachedImages(parentID int64, limit int) ([]int64, error)
	SetMeta(recordID int64, key, value string) error
	DeleteMeta(recordID int64, key string) error
	SetFeaturedImage(recordID, imageID int64) (int64, error)
}

// Mode selects which bookkeeping flag a listing reports on.
type Mode string

const (
	// ModeUnset lists records where no attached image was found.
	ModeUnset Mode = "unset"
	// ModeMultiple lists records where several candidate images were found.
	ModeMultiple Mode = "multiple"
)

func ParseMode(s string) (Mode, error) {
	switch s {
	case "unset":
		return ModeUnset, nil
	case "multiple":
		return ModeMultiple, nil
	}
	return "", fmt.Errorf("unknown mode %q (expected unset or multiple)", s)
}

func (m Mode) metaKey() string {
	if m == ModeMultiple {
		return MetaMultipleImages
	}
	return MetaNoThumbnail
}

// Options controls a single assignment run.
type Options struct {
	// PostType restricts the scan to one record type.
	PostType string
	// Amount caps how many records are processed. Ignored when All is set.
	Amount int
	// All processes every matching record regardless of Amount.
	All bool
	// FetchLimit caps how many attached images are fetched per record.
	// At the default of 1 the multiple-images flag never triggers; raise
	// it to record competing candidates.
	FetchLimit int
}

// Summary reports what an assignment run did.
type Summary struct {
	// Total is how many records matched before the amount cap.
	Total    int
	Scanned  int
	Assigned int
	NoImage  int
	Multiple int
}

// Assigner walks records without a featured image and picks one from
// their attached images. Records are processed one at a time; the first
// storage error aborts the run.
type Assigner struct {
	store Store
	out   io.Writer
}

func NewAssigner(store Store, out io.Writer) *Assigner {
	if out == nil {
		out = io.Discard
	}
	return &Assigner{store: store, out: out}
}

// Assign scans records of opts.PostType that have neither a featured
// image nor the no-thumbnail flag, and tries to pick a featured image
// for each from its attached images.
func (a *Assigner) Assign(opts Options) (*Summary, error) {
	limit := opts.Amount
	if opts.All {
		limit = 0
	}

	ids, total, err := a.store.RecordsLackingMeta(opts.PostType, []string{MetaThumbnailID, MetaNoThumbnail}, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find records without a featured image: %w", err)
	}

	fetchLimit := opts.FetchLimit
	if fetchLimit <= 0 {
		fetchLimit = 1
	}

	summary := &Summary{Total: total}
	for _, id := range ids {
		summary.Scanned++

		images, err := a.store.AttachedImages(id, fetchLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch images for record %d: %w", id, err)
		}

		if len(images) == 0 {
			if err := a.store.SetMeta(id, MetaNoThumbnail, "true"); err != nil {
				return nil, fmt.Errorf("failed to flag record %d: %w", id, err)
			}
			summary.NoImage++
			fmt.Fprintf(a.out, "No images attached to record %d\n", id)
			continue
		}

		if len(images) > 1 {
			if err := a.store.SetMeta(id, MetaMultipleImages, JoinIDs(images)); err != nil {
				return nil, fmt.Errorf("failed to flag record %d: %w", id, err)
			}
			summary.Multiple++
			fmt.Fprintf(a.out, "Multiple images attached to record %d: %s\n", id, JoinIDs(images))
		}

		imageID := images[len(images)-1]
		assigned, err := a.store.SetFeaturedImage(id, imageID)
		if err != nil {
			return nil, fmt.Errorf("failed to set featured image for record %d: %w", id, err)
		}
		if assigned == 0 {
			fmt.Fprintf(a.out, "Could not set image %d for record %d\n", imageID, id)
			continue
		}

		summary.Assigned++
		fmt.Fprintf(a.out, "Set image %d as featured image for record %d\n", assigned, id)
	}

	return summary, nil
}

// List returns ids of records carrying the flag selected by mode.
func (a *Assigner) List(mode Mode, postType string) ([]int64, error) {
	ids, err := a.store.RecordsWithMeta(postType, []string{mode.metaKey()})
	if err != nil {
		return nil, fmt.Errorf("failed to list flagged records: %w", err)
	}
	return ids, nil
}

// Cleanup removes both bookkeeping flags from every record carrying
// either one, and returns how many records were cleaned.
func (a *Assigner) Cleanup(postType string) (int, error) {
	ids, err := a.store.RecordsWithMeta(postType, []string{MetaNoThumbnail, MetaMultipleImages})
	if err != nil {
		return 0, fmt.Errorf("failed to find flagged records: %w", err)
	}

	for _, id := range ids {
		if err := a.store.DeleteMeta(id, MetaNoThumbnail); err != nil {
			return 0, fmt.Errorf("failed to clean record %d: %w", id, err)
		}
		if err := a.store.DeleteMeta(id, MetaMultipleImages); err != nil {
			return 0, fmt.Errorf("failed to clean record %d: %w", id, err)
		}
		fmt.Fprintf(a.out, "Cleaned record %d\n", id)
	}

	return len(ids), nil
}

// JoinIDs renders ids as a comma-separated list, the format stored under
// the multiple-images flag.
func JoinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
