package persistence

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/melisma/melisma/model"
)

var _ = Describe("ReleaseRepository", func() {
	BeforeEach(resetDB)

	Describe("aggregates", func() {
		It("derives duration, counts and dates from the owned tracks", func() {
			var relID model.ReleaseID
			inWriteTx(func(tx model.DataStore) {
				rel := createRelease(tx, "Agg")
				m1 := &model.Medium{ReleaseID: rel.ID, Position: 1}
				m2 := &model.Medium{ReleaseID: rel.ID, Position: 2}
				Expect(tx.Release(ctx).PutMedium(m1)).To(Succeed())
				Expect(tx.Release(ctx).PutMedium(m2)).To(Succeed())
				for i, m := range []*model.Medium{m1, m1, m2} {
					t := createTrack(tx, fmt.Sprintf("a%d", i), fmt.Sprintf("/agg/%d.flac", i))
					t.ReleaseID = rel.ID
					t.MediumID = m.ID
					t.Duration = 100
					t.Date = "2001-06-01"
					if i == 0 {
						t.Date = "1999"
						t.OriginalDate = "1980-01-01"
					}
					Expect(tx.Track(ctx).Put(t)).To(Succeed())
				}
				relID = rel.ID
			})
			inReadTx(func(tx model.DataStore) {
				agg, err := tx.Release(ctx).GetAggregates(relID)
				Expect(err).ToNot(HaveOccurred())
				Expect(agg.TrackCount).To(Equal(int64(3)))
				Expect(agg.DiscCount).To(Equal(int64(2)))
				Expect(agg.Duration).To(BeNumerically("~", 300, 0.01))
				Expect(agg.Date).To(Equal("1999"))
				Expect(agg.Year).To(Equal(1999))
				Expect(agg.OriginalYear).To(Equal(1980))
			})
		})
	})

	Describe("labels, countries and release types", func() {
		It("replaces and reads back the full sets", func() {
			var relID model.ReleaseID
			inWriteTx(func(tx model.DataStore) {
				rel := createRelease(tx, "Tagged")
				relID = rel.ID
				Expect(tx.Release(ctx).SetLabels(relID, []string{"Harvest", "EMI"})).To(Succeed())
				Expect(tx.Release(ctx).SetCountries(relID, []string{"GB"})).To(Succeed())
				Expect(tx.Release(ctx).SetReleaseTypes(relID, []string{"Album", "Live"})).To(Succeed())
			})
			inReadTx(func(tx model.DataStore) {
				labels, err := tx.Release(ctx).GetLabels(relID)
				Expect(err).ToNot(HaveOccurred())
				Expect(labels).To(Equal([]string{"EMI", "Harvest"}))
				countries, err := tx.Release(ctx).GetCountries(relID)
				Expect(err).ToNot(HaveOccurred())
				Expect(countries).To(Equal([]string{"GB"}))
				types, err := tx.Release(ctx).GetReleaseTypes(relID)
				Expect(err).ToNot(HaveOccurred())
				Expect(types).To(Equal([]string{"Album", "Live"}))
			})
			inWriteTx(func(tx model.DataStore) {
				Expect(tx.Release(ctx).SetLabels(relID, []string{"Harvest"})).To(Succeed())
			})
			inReadTx(func(tx model.DataStore) {
				labels, err := tx.Release(ctx).GetLabels(relID)
				Expect(err).ToNot(HaveOccurred())
				Expect(labels).To(Equal([]string{"Harvest"}))
			})
		})

		It("filters releases by release type", func() {
			inWriteTx(func(tx model.DataStore) {
				r1 := createRelease(tx, "Live one")
				r2 := createRelease(tx, "Studio one")
				Expect(tx.Release(ctx).SetReleaseTypes(r1.ID, []string{"Live"})).To(Succeed())
				Expect(tx.Release(ctx).SetReleaseTypes(r2.ID, []string{"Album"})).To(Succeed())
			})
			inReadTx(func(tx model.DataStore) {
				res, err := tx.Release(ctx).Find(model.ReleaseFindParameters{ReleaseType: "Live"})
				Expect(err).ToNot(HaveOccurred())
				Expect(res.Results).To(HaveLen(1))
				Expect(res.Results[0].Name).To(Equal("Live one"))
			})
		})
	})

	Describe("artist filter", func() {
		It("lists releases the artist appears on, honoring link types", func() {
			var artistID model.ArtistID
			inWriteTx(func(tx model.DataStore) {
				a := createArtist(tx, "A")
				r1 := createRelease(tx, "On it")
				r2 := createRelease(tx, "Not on it")
				t1 := createTrack(tx, "t1", "/af/1.flac")
				t1.ReleaseID = r1.ID
				Expect(tx.Track(ctx).Put(t1)).To(Succeed())
				linkTrackToArtist(tx, t1, a, model.TrackArtistLinkTypeComposer)
				t2 := createTrack(tx, "t2", "/af/2.flac")
				t2.ReleaseID = r2.ID
				Expect(tx.Track(ctx).Put(t2)).To(Succeed())
				artistID = a.ID
			})
			inReadTx(func(tx model.DataStore) {
				res, err := tx.Release(ctx).Find(model.ReleaseFindParameters{Artist: artistID})
				Expect(err).ToNot(HaveOccurred())
				Expect(res.Results).To(HaveLen(1))
				Expect(res.Results[0].Name).To(Equal("On it"))

				res, err = tx.Release(ctx).Find(model.ReleaseFindParameters{
					Artist:    artistID,
					LinkTypes: []model.TrackArtistLinkType{model.TrackArtistLinkTypeArtist},
				})
				Expect(err).ToNot(HaveOccurred())
				Expect(res.Results).To(BeEmpty())
			})
		})
	})

	Describe("keyset iteration", func() {
		It("walks all releases through id ranges", func() {
			inWriteTx(func(tx model.DataStore) {
				for i := 0; i < 12; i++ {
					createRelease(tx, fmt.Sprintf("r%02d", i))
				}
			})
			var seen int
			cursor := model.ReleaseID(0)
			for {
				var rng model.IDRange[model.ReleaseID]
				inReadTx(func(tx model.DataStore) {
					var err error
					rng, err = tx.Release(ctx).FindNextIDRange(cursor, 5)
					Expect(err).ToNot(HaveOccurred())
				})
				if !rng.IsValid() {
					break
				}
				inReadTx(func(tx model.DataStore) {
					Expect(tx.Release(ctx).FindInIDRange(rng, func(*model.Release) error {
						seen++
						return nil
					})).To(Succeed())
				})
				cursor = rng.Last
			}
			Expect(seen).To(Equal(12))
		})
	})

	Describe("orphans", func() {
		It("purges releases with no tracks", func() {
			var empty, full model.ReleaseID
			inWriteTx(func(tx model.DataStore) {
				e := createRelease(tx, "empty")
				f := createRelease(tx, "full")
				t := createTrack(tx, "t", "/orp.flac")
				t.ReleaseID = f.ID
				Expect(tx.Track(ctx).Put(t)).To(Succeed())
				empty, full = e.ID, f.ID
			})
			inWriteTx(func(tx model.DataStore) {
				c, err := tx.Release(ctx).PurgeOrphans()
				Expect(err).ToNot(HaveOccurred())
				Expect(c).To(Equal(int64(1)))
			})
			inReadTx(func(tx model.DataStore) {
				_, err := tx.Release(ctx).Get(empty)
				Expect(err).To(MatchError(model.ErrNotFound))
				_, err = tx.Release(ctx).Get(full)
				Expect(err).ToNot(HaveOccurred())
			})
		})
	})
})
