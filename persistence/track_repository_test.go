package persistence

import (
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/melisma/melisma/model"
)

var _ = Describe("TrackRepository", func() {
	BeforeEach(resetDB)

	Describe("round-trip", func() {
		It("persists a track with its release and artist links", func() {
			const mbid = "f1d2d2f9-24f5-4b8e-a1a3-0f6f6a2c1b5d"
			var trackID model.TrackID
			var artistID model.ArtistID

			inWriteTx(func(tx model.DataStore) {
				a := createArtist(tx, "X")
				rel := createRelease(tx, "Y")
				rel.MBID = mbid
				Expect(tx.Release(ctx).Put(rel)).To(Succeed())
				t := createTrack(tx, "Z", "/a/Z.flac")
				t.ReleaseID = rel.ID
				Expect(tx.Track(ctx).Put(t)).To(Succeed())
				linkTrackToArtist(tx, t, a, model.TrackArtistLinkTypeArtist)
				trackID = t.ID
				artistID = a.ID
			})

			inReadTx(func(tx model.DataStore) {
				t, err := tx.Track(ctx).Get(trackID)
				Expect(err).ToNot(HaveOccurred())
				rel, err := tx.Release(ctx).Get(t.ReleaseID)
				Expect(err).ToNot(HaveOccurred())
				Expect(rel.MBID).To(Equal(mbid))

				count, err := tx.Artist(ctx).GetReleaseCount(artistID)
				Expect(err).ToNot(HaveOccurred())
				Expect(count).To(Equal(int64(1)))

				byMBID, err := tx.Release(ctx).GetByMBID(mbid)
				Expect(err).ToNot(HaveOccurred())
				Expect(byMBID).To(HaveLen(1))
				Expect(byMBID[0].ID).To(Equal(rel.ID))
			})
		})

		It("round-trips every scalar field", func() {
			gain := 0.75
			written := time.Date(2023, 11, 5, 8, 30, 0, 0, time.UTC)
			var id model.TrackID
			inWriteTx(func(tx model.DataStore) {
				t := &model.Track{
					ScanVersion:       3,
					AbsoluteFilePath:  "/music/a.opus",
					FileSize:          123456,
					FileLastWrite:     written,
					FileAdded:         written,
					Name:              "A",
					Duration:          245.5,
					Bitrate:           128000,
					BitsPerSample:     24,
					SampleRate:        48000,
					ChannelCount:      2,
					TrackNumber:       7,
					Date:              "2023-11-05",
					OriginalDate:      "1969",
					TrackMBID:         "11111111-2222-3333-4444-555555555555",
					RecordingMBID:     "66666666-7777-8888-9999-000000000000",
					Copyright:         "someone",
					CopyrightURL:      "https://example.com",
					Advisory:          model.AdvisoryClean,
					ReplayGain:        &gain,
					ArtistDisplayName: "A feat. B",
					Comment:           "a comment",
				}
				Expect(tx.Track(ctx).Put(t)).To(Succeed())
				id = t.ID
			})
			inReadTx(func(tx model.DataStore) {
				t, err := tx.Track(ctx).Get(id)
				Expect(err).ToNot(HaveOccurred())
				Expect(t.Name).To(Equal("A"))
				Expect(t.Duration).To(BeNumerically("~", 245.5, 0.01))
				Expect(t.BitsPerSample).To(Equal(24))
				Expect(t.TrackNumber).To(Equal(7))
				Expect(t.Year()).To(Equal(2023))
				Expect(t.OriginalYear()).To(Equal(1969))
				Expect(t.Advisory).To(Equal(model.AdvisoryClean))
				Expect(t.ReplayGain).ToNot(BeNil())
				Expect(*t.ReplayGain).To(BeNumerically("~", 0.75, 0.0001))
				Expect(t.FileLastWrite.UTC()).To(BeTemporally("==", written))
				Expect(t.ReleaseID.IsValid()).To(BeFalse())
				Expect(t.LibraryID.IsValid()).To(BeFalse())
			})
		})

		It("returns ErrNotFound for unknown ids and paths", func() {
			inReadTx(func(tx model.DataStore) {
				_, err := tx.Track(ctx).Get(99999)
				Expect(err).To(MatchError(model.ErrNotFound))
				_, err = tx.Track(ctx).GetByPath("/nope.flac")
				Expect(err).To(MatchError(model.ErrNotFound))
			})
		})

		It("rejects duplicate file paths", func() {
			inWriteTx(func(tx model.DataStore) {
				createTrack(tx, "one", "/same.flac")
				t := &model.Track{Name: "two", AbsoluteFilePath: "/same.flac"}
				Expect(tx.Track(ctx).Put(t)).To(MatchError(model.ErrIntegrityViolation))
			})
		})
	})

	Describe("cluster intersection", func() {
		It("returns only tracks belonging to all requested clusters", func() {
			var c1, c2 model.ClusterID
			var t2 model.TrackID
			inWriteTx(func(tx model.DataStore) {
				cl1 := createCluster(tx, "genre", "rock")
				cl2 := createCluster(tx, "genre", "pop")
				tr1 := createTrack(tx, "T1", "/t1.flac")
				tr2 := createTrack(tx, "T2", "/t2.flac")
				tr3 := createTrack(tx, "T3", "/t3.flac")
				Expect(tx.Track(ctx).SetClusters(tr1.ID, []model.ClusterID{cl1.ID})).To(Succeed())
				Expect(tx.Track(ctx).SetClusters(tr2.ID, []model.ClusterID{cl1.ID, cl2.ID})).To(Succeed())
				Expect(tx.Track(ctx).SetClusters(tr3.ID, []model.ClusterID{cl2.ID})).To(Succeed())
				c1, c2 = cl1.ID, cl2.ID
				t2 = tr2.ID
			})
			inReadTx(func(tx model.DataStore) {
				res, err := tx.Track(ctx).FindIDs(model.TrackFindParameters{
					Clusters: []model.ClusterID{c1, c2},
				})
				Expect(err).ToNot(HaveOccurred())
				Expect(res.Results).To(ConsistOf(t2))
			})
		})
	})

	Describe("FindParameters", func() {
		var rel *model.Release
		var lib *model.MediaLibrary

		BeforeEach(func() {
			inWriteTx(func(tx model.DataStore) {
				rel = createRelease(tx, "The Release")
				lib = &model.MediaLibrary{Path: "/music", Name: "main"}
				Expect(tx.MediaLibrary(ctx).Put(lib)).To(Succeed())
				for i := 1; i <= 5; i++ {
					t := createTrack(tx, fmt.Sprintf("Track %d", i), fmt.Sprintf("/music/%d.flac", i))
					if i <= 3 {
						t.ReleaseID = rel.ID
						t.TrackNumber = i
					}
					if i == 4 {
						t.LibraryID = lib.ID
					}
					Expect(tx.Track(ctx).Put(t)).To(Succeed())
				}
			})
		})

		It("filters by release", func() {
			inReadTx(func(tx model.DataStore) {
				res, err := tx.Track(ctx).Find(model.TrackFindParameters{Release: rel.ID})
				Expect(err).ToNot(HaveOccurred())
				Expect(res.Results).To(HaveLen(3))
			})
		})

		It("filters by non-release", func() {
			inReadTx(func(tx model.DataStore) {
				res, err := tx.Track(ctx).Find(model.TrackFindParameters{NonRelease: true})
				Expect(err).ToNot(HaveOccurred())
				Expect(res.Results).To(HaveLen(2))
			})
		})

		It("filters by release name", func() {
			inReadTx(func(tx model.DataStore) {
				res, err := tx.Track(ctx).Find(model.TrackFindParameters{ReleaseName: "The Release"})
				Expect(err).ToNot(HaveOccurred())
				Expect(res.Results).To(HaveLen(3))
			})
		})

		It("filters by track number", func() {
			two := 2
			inReadTx(func(tx model.DataStore) {
				res, err := tx.Track(ctx).Find(model.TrackFindParameters{TrackNumber: &two})
				Expect(err).ToNot(HaveOccurred())
				Expect(res.Results).To(HaveLen(1))
				Expect(res.Results[0].Name).To(Equal("Track 2"))
			})
		})

		It("filters by library", func() {
			inReadTx(func(tx model.DataStore) {
				res, err := tx.Track(ctx).Find(model.TrackFindParameters{Library: lib.ID})
				Expect(err).ToNot(HaveOccurred())
				Expect(res.Results).To(HaveLen(1))
				Expect(res.Results[0].Name).To(Equal("Track 4"))
			})
		})

		It("filters by keywords and release together", func() {
			inReadTx(func(tx model.DataStore) {
				res, err := tx.Track(ctx).Find(model.TrackFindParameters{
					Keywords: []string{"track", "3"},
					Release:  rel.ID,
				})
				Expect(err).ToNot(HaveOccurred())
				Expect(res.Results).To(HaveLen(1))
				Expect(res.Results[0].Name).To(Equal("Track 3"))
			})
		})

		It("returns everything when no filter is set", func() {
			inReadTx(func(tx model.DataStore) {
				res, err := tx.Track(ctx).Find(model.TrackFindParameters{})
				Expect(err).ToNot(HaveOccurred())
				Expect(res.Results).To(HaveLen(5))
			})
		})

		It("filters by written-after", func() {
			inReadTx(func(tx model.DataStore) {
				res, err := tx.Track(ctx).Find(model.TrackFindParameters{
					WrittenAfter: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
				})
				Expect(err).ToNot(HaveOccurred())
				Expect(res.Results).To(BeEmpty())
			})
		})
	})

	Describe("pagination", func() {
		BeforeEach(func() {
			inWriteTx(func(tx model.DataStore) {
				for i := 1; i <= 25; i++ {
					createTrack(tx, fmt.Sprintf("%03d", i), fmt.Sprintf("/p/%03d.flac", i))
				}
			})
		})

		It("concatenated pages equal the unpaginated prefix and moreResults is exact", func() {
			inReadTx(func(tx model.DataStore) {
				full, err := tx.Track(ctx).Find(model.TrackFindParameters{
					SortMethod: model.TrackSortMethodByName,
				})
				Expect(err).ToNot(HaveOccurred())
				Expect(full.Results).To(HaveLen(25))
				Expect(full.MoreResults).To(BeFalse())

				var paged []model.Track
				for offset := 0; ; offset += 10 {
					page, err := tx.Track(ctx).Find(model.TrackFindParameters{
						SortMethod: model.TrackSortMethodByName,
						Range:      &model.Range{Offset: offset, Size: 10},
					})
					Expect(err).ToNot(HaveOccurred())
					paged = append(paged, page.Results...)
					if !page.MoreResults {
						Expect(len(page.Results) < 10 || offset+10 >= 25).To(BeTrue())
						break
					}
					Expect(page.Results).To(HaveLen(10))
				}
				Expect(paged).To(HaveLen(25))
				for i := range paged {
					Expect(paged[i].ID).To(Equal(full.Results[i].ID))
				}
			})
		})

		It("reports moreResults on a partial last page boundary", func() {
			inReadTx(func(tx model.DataStore) {
				page, err := tx.Track(ctx).Find(model.TrackFindParameters{
					SortMethod: model.TrackSortMethodByName,
					Range:      &model.Range{Offset: 20, Size: 5},
				})
				Expect(err).ToNot(HaveOccurred())
				Expect(page.Results).To(HaveLen(5))
				Expect(page.MoreResults).To(BeFalse())

				page, err = tx.Track(ctx).Find(model.TrackFindParameters{
					SortMethod: model.TrackSortMethodByName,
					Range:      &model.Range{Offset: 15, Size: 5},
				})
				Expect(err).ToNot(HaveOccurred())
				Expect(page.MoreResults).To(BeTrue())
			})
		})
	})

	Describe("keyset iteration", func() {
		var ids []model.TrackID

		BeforeEach(func() {
			ids = nil
			inWriteTx(func(tx model.DataStore) {
				for i := 1; i <= 100; i++ {
					t := createTrack(tx, fmt.Sprintf("k%03d", i), fmt.Sprintf("/k/%03d.flac", i))
					ids = append(ids, t.ID)
				}
			})
		})

		It("visits every row exactly once in ascending id order", func() {
			var visited []model.TrackID
			inReadTx(func(tx model.DataStore) {
				cursor := model.TrackID(0)
				for {
					next, err := tx.Track(ctx).FindFromID(cursor, 20, func(t *model.Track) error {
						visited = append(visited, t.ID)
						return nil
					})
					Expect(err).ToNot(HaveOccurred())
					if next == cursor {
						break
					}
					cursor = next
				}
			})
			Expect(visited).To(Equal(ids))
		})

		It("skips rows deleted mid-scan and visits rows created mid-scan", func() {
			var visited []model.TrackID
			cursor := model.TrackID(0)
			var added model.TrackID

			// First batch.
			inReadTx(func(tx model.DataStore) {
				next, err := tx.Track(ctx).FindFromID(cursor, 20, func(t *model.Track) error {
					visited = append(visited, t.ID)
					return nil
				})
				Expect(err).ToNot(HaveOccurred())
				cursor = next
			})

			// Concurrent mutations between batches: delete a not-yet-visited
			// row, add a new one past the end.
			inWriteTx(func(tx model.DataStore) {
				Expect(tx.Track(ctx).Delete(ids[49])).To(Succeed())
				t := createTrack(tx, "k-new", "/k/new.flac")
				added = t.ID
			})

			for {
				var next model.TrackID
				inReadTx(func(tx model.DataStore) {
					var err error
					next, err = tx.Track(ctx).FindFromID(cursor, 20, func(t *model.Track) error {
						visited = append(visited, t.ID)
						return nil
					})
					Expect(err).ToNot(HaveOccurred())
				})
				if next == cursor {
					break
				}
				cursor = next
			}

			Expect(visited).ToNot(ContainElement(ids[49]))
			Expect(visited).To(ContainElement(added))
			Expect(visited).To(HaveLen(100)) // 100 created - 1 deleted + 1 added
		})

		It("finds id ranges and visits them in short transactions", func() {
			var first model.IDRange[model.TrackID]
			inReadTx(func(tx model.DataStore) {
				var err error
				first, err = tx.Track(ctx).FindNextIDRange(0, 30)
				Expect(err).ToNot(HaveOccurred())
			})
			Expect(first.IsValid()).To(BeTrue())
			Expect(first.First).To(Equal(ids[0]))
			Expect(first.Last).To(Equal(ids[29]))

			var count int
			inReadTx(func(tx model.DataStore) {
				Expect(tx.Track(ctx).FindInIDRange(first, func(*model.Track) error {
					count++
					return nil
				})).To(Succeed())
			})
			Expect(count).To(Equal(30))

			var past model.IDRange[model.TrackID]
			inReadTx(func(tx model.DataStore) {
				var err error
				past, err = tx.Track(ctx).FindNextIDRange(ids[99], 30)
				Expect(err).ToNot(HaveOccurred())
			})
			Expect(past.IsValid()).To(BeFalse())
		})
	})

	Describe("Search", func() {
		BeforeEach(func() {
			inWriteTx(func(tx model.DataStore) {
				t1 := createTrack(tx, "Love Me Do", "/se/1.flac")
				t1.ArtistDisplayName = "The Beatles"
				t1.Date = "1962-10-05"
				Expect(tx.Track(ctx).Put(t1)).To(Succeed())
				t2 := createTrack(tx, "Love Song", "/se/2.flac")
				t2.ArtistDisplayName = "The Cure"
				t2.Date = "1989-04-01"
				Expect(tx.Track(ctx).Put(t2)).To(Succeed())
			})
		})

		It("combines field operators with keywords", func() {
			inReadTx(func(tx model.DataStore) {
				res, err := tx.Track(ctx).Search("artist:beatles love", nil)
				Expect(err).ToNot(HaveOccurred())
				Expect(res.Results).To(HaveLen(1))
				Expect(res.Results[0].Name).To(Equal("Love Me Do"))

				res, err = tx.Track(ctx).Search("year:1980-1990", nil)
				Expect(err).ToNot(HaveOccurred())
				Expect(res.Results).To(HaveLen(1))
				Expect(res.Results[0].Name).To(Equal("Love Song"))

				res, err = tx.Track(ctx).Search("love", nil)
				Expect(err).ToNot(HaveOccurred())
				Expect(res.Results).To(HaveLen(2))
			})
		})
	})

	Describe("MBID duplicates", func() {
		It("lists only tracks sharing a non-empty track MBID", func() {
			const dup = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"
			var d1, d2 model.TrackID
			inWriteTx(func(tx model.DataStore) {
				t1 := createTrack(tx, "d1", "/d/1.flac")
				t1.TrackMBID = dup
				Expect(tx.Track(ctx).Put(t1)).To(Succeed())
				t2 := createTrack(tx, "d2", "/d/2.flac")
				t2.TrackMBID = dup
				Expect(tx.Track(ctx).Put(t2)).To(Succeed())
				createTrack(tx, "d3", "/d/3.flac")
				createTrack(tx, "d4", "/d/4.flac")
				d1, d2 = t1.ID, t2.ID
			})
			inReadTx(func(tx model.DataStore) {
				res, err := tx.Track(ctx).FindIDsWithMBIDDuplicates(nil)
				Expect(err).ToNot(HaveOccurred())
				Expect(res.Results).To(ConsistOf(d1, d2))
			})
		})
	})
})
