package thumbnail

import (
	"sort"
	"strconv"
	"strings"
)

// fakeStore implements Store with in-memory records and meta. Error
// fields make individual methods fail on demand.
type fakeStore struct {
	records map[int64]fakeRecord
	meta    map[int64]map[string]string

	lackingErr  error
	withErr     error
	imagesErr   error
	setMetaErr  error
	deleteErr   error
	featuredErr error

	// rejectFeatured makes SetFeaturedImage report failure without error.
	rejectFeatured bool
}

type fakeRecord struct {
	recordType string
	parentID   int64
	mediaType  string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records: make(map[int64]fakeRecord),
		meta:    make(map[int64]map[string]string),
	}
}

func (f *fakeStore) addPost(id int64) {
	f.records[id] = fakeRecord{recordType: "post"}
}

func (f *fakeStore) addTyped(id int64, recordType string) {
	f.records[id] = fakeRecord{recordType: recordType}
}

func (f *fakeStore) addImage(id, parentID int64) {
	f.records[id] = fakeRecord{recordType: "attachment", parentID: parentID, mediaType: "image/jpeg"}
}

func (f *fakeStore) getMeta(id int64, key string) (string, bool) {
	value, ok := f.meta[id][key]
	return value, ok
}

func (f *fakeStore) RecordsLackingMeta(recordType string, absent []string, limit int) ([]int64, int, error) {
	if f.lackingErr != nil {
		return nil, 0, f.lackingErr
	}

	var ids []int64
	for id, rec := range f.records {
		if recordType != "" && rec.recordType != recordType {
			continue
		}
		carries := false
		for _, key := range absent {
			if _, ok := f.meta[id][key]; ok {
				carries = true
				break
			}
		}
		if !carries {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	total := len(ids)
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, total, nil
}

func (f *fakeStore) RecordsWithMeta(recordType string, keys []string) ([]int64, error) {
	if f.withErr != nil {
		return nil, f.withErr
	}

	var ids []int64
	for id, rec := range f.records {
		if recordType != "" && rec.recordType != recordType {
			continue
		}
		for _, key := range keys {
			if _, ok := f.meta[id][key]; ok {
				ids = append(ids, id)
				break
			}
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeStore) AttachedImages(parentID int64, limit int) ([]int64, error) {
	if f.imagesErr != nil {
		return nil, f.imagesErr
	}

	var ids []int64
	for id, rec := range f.records {
		if rec.recordType == "attachment" && rec.parentID == parentID && strings.HasPrefix(rec.mediaType, "image/") {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (f *fakeStore) SetMeta(recordID int64, key, value string) error {
	if f.setMetaErr != nil {
		return f.setMetaErr
	}
	if f.meta[recordID] == nil {
		f.meta[recordID] = make(map[string]string)
	}
	f.meta[recordID][key] = value
	return nil
}

func (f *fakeStore) DeleteMeta(recordID int64, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.meta[recordID], key)
	return nil
}

func (f *fakeStore) SetFeaturedImage(recordID, imageID int64) (int64, error) {
	if f.featuredErr != nil {
		return 0, f.featuredErr
	}
	if f.rejectFeatured {
		return 0, nil
	}
	rec, ok := f.records[imageID]
	if !ok || rec.recordType != "attachment" || !strings.HasPrefix(rec.mediaType, "image/") {
		return 0, nil
	}
	if err := f.SetMeta(recordID, MetaThumbnailID, strconv.FormatInt(imageID, 10)); err != nil {
		return 0, err
	}
	return imageID, nil
}
