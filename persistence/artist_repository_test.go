package persistence

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/melisma/melisma/model"
)

var _ = Describe("ArtistRepository", func() {
	BeforeEach(resetDB)

	Describe("keyword matching", func() {
		BeforeEach(func() {
			inWriteTx(func(tx model.DataStore) {
				createArtist(tx, "The Foo Bar")
				createArtist(tx, "Foo")
				createArtist(tx, "Bar Baz")
			})
		})

		It("requires every keyword to match", func() {
			inReadTx(func(tx model.DataStore) {
				res, err := tx.Artist(ctx).Find(model.ArtistFindParameters{
					Keywords: []string{"foo", "bar"},
				})
				Expect(err).ToNot(HaveOccurred())
				Expect(res.Results).To(HaveLen(1))
				Expect(res.Results[0].Name).To(Equal("The Foo Bar"))
			})
		})

		It("matches the sort name too", func() {
			inWriteTx(func(tx model.DataStore) {
				a := &model.Artist{Name: "光田 康典", SortName: "Mitsuda, Yasunori"}
				Expect(tx.Artist(ctx).Put(a)).To(Succeed())
			})
			inReadTx(func(tx model.DataStore) {
				res, err := tx.Artist(ctx).Find(model.ArtistFindParameters{
					Keywords: []string{"mitsuda"},
				})
				Expect(err).ToNot(HaveOccurred())
				Expect(res.Results).To(HaveLen(1))
			})
		})

		It("treats SQL wildcards in keywords literally", func() {
			inWriteTx(func(tx model.DataStore) {
				createArtist(tx, "100% Pure")
			})
			inReadTx(func(tx model.DataStore) {
				res, err := tx.Artist(ctx).Find(model.ArtistFindParameters{
					Keywords: []string{"0% p"},
				})
				Expect(err).ToNot(HaveOccurred())
				Expect(res.Results).To(HaveLen(1))
				Expect(res.Results[0].Name).To(Equal("100% Pure"))

				// "_" must not act as a single-char wildcard.
				res, err = tx.Artist(ctx).Find(model.ArtistFindParameters{
					Keywords: []string{"f_o"},
				})
				Expect(err).ToNot(HaveOccurred())
				Expect(res.Results).To(BeEmpty())
			})
		})
	})

	Describe("sorting", func() {
		It("sorts by name case-insensitively", func() {
			inWriteTx(func(tx model.DataStore) {
				createArtist(tx, "beta")
				createArtist(tx, "Alpha")
				createArtist(tx, "GAMMA")
			})
			inReadTx(func(tx model.DataStore) {
				res, err := tx.Artist(ctx).Find(model.ArtistFindParameters{
					SortMethod: model.ArtistSortMethodByName,
				})
				Expect(err).ToNot(HaveOccurred())
				names := []string{res.Results[0].Name, res.Results[1].Name, res.Results[2].Name}
				Expect(names).To(Equal([]string{"Alpha", "beta", "GAMMA"}))
			})
		})
	})

	Describe("link filters", func() {
		It("filters artists by link type", func() {
			inWriteTx(func(tx model.DataStore) {
				performer := createArtist(tx, "P")
				composer := createArtist(tx, "C")
				t := createTrack(tx, "T", "/lt.flac")
				linkTrackToArtist(tx, t, performer, model.TrackArtistLinkTypeArtist)
				linkTrackToArtist(tx, t, composer, model.TrackArtistLinkTypeComposer)
			})
			inReadTx(func(tx model.DataStore) {
				res, err := tx.Artist(ctx).Find(model.ArtistFindParameters{
					LinkTypes: []model.TrackArtistLinkType{model.TrackArtistLinkTypeComposer},
				})
				Expect(err).ToNot(HaveOccurred())
				Expect(res.Results).To(HaveLen(1))
				Expect(res.Results[0].Name).To(Equal("C"))
			})
		})
	})

	Describe("orphans", func() {
		It("collects artists once their last link is gone", func() {
			var orphan, kept model.ArtistID
			inWriteTx(func(tx model.DataStore) {
				a1 := createArtist(tx, "orphan")
				a2 := createArtist(tx, "kept")
				t := createTrack(tx, "T", "/o.flac")
				linkTrackToArtist(tx, t, a2, model.TrackArtistLinkTypeArtist)
				orphan, kept = a1.ID, a2.ID
			})
			inReadTx(func(tx model.DataStore) {
				res, err := tx.Artist(ctx).FindOrphanIDs(nil)
				Expect(err).ToNot(HaveOccurred())
				Expect(res.Results).To(ConsistOf(orphan))
			})
			inWriteTx(func(tx model.DataStore) {
				c, err := tx.Artist(ctx).PurgeOrphans()
				Expect(err).ToNot(HaveOccurred())
				Expect(c).To(Equal(int64(1)))
			})
			inReadTx(func(tx model.DataStore) {
				_, err := tx.Artist(ctx).Get(orphan)
				Expect(err).To(MatchError(model.ErrNotFound))
				_, err = tx.Artist(ctx).Get(kept)
				Expect(err).ToNot(HaveOccurred())
				res, err := tx.Artist(ctx).FindOrphanIDs(nil)
				Expect(err).ToNot(HaveOccurred())
				Expect(res.Results).To(BeEmpty())
			})
		})
	})

	Describe("MBID lookup", func() {
		It("finds by MBID case-insensitively and rejects non-UUIDs", func() {
			const mbid = "0383dadf-2a4e-4d10-a46a-e9e041da8eb3"
			inWriteTx(func(tx model.DataStore) {
				a := &model.Artist{Name: "Q", MBID: mbid}
				Expect(tx.Artist(ctx).Put(a)).To(Succeed())
			})
			inReadTx(func(tx model.DataStore) {
				res, err := tx.Artist(ctx).GetByMBID("0383DADF-2A4E-4D10-A46A-E9E041DA8EB3")
				Expect(err).ToNot(HaveOccurred())
				Expect(res).To(HaveLen(1))

				res, err = tx.Artist(ctx).GetByMBID("not-a-uuid")
				Expect(err).ToNot(HaveOccurred())
				Expect(res).To(BeEmpty())
			})
		})
	})
})
