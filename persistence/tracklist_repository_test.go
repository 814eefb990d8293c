package persistence

import (
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/melisma/melisma/model"
)

var _ = Describe("TrackListRepository", func() {
	BeforeEach(resetDB)

	var user *model.User

	BeforeEach(func() {
		inWriteTx(func(tx model.DataStore) {
			user = createUser(tx, "carol")
		})
	})

	It("keeps entries in insertion order, duplicates included", func() {
		var listID model.TrackListID
		var t1, t2 model.TrackID
		inWriteTx(func(tx model.DataStore) {
			tr1 := createTrack(tx, "one", "/tl/1.flac")
			tr2 := createTrack(tx, "two", "/tl/2.flac")
			tl := &model.TrackList{Name: "mix", UserID: user.ID, LastModified: time.Now()}
			Expect(tx.TrackList(ctx).Put(tl)).To(Succeed())
			for _, id := range []model.TrackID{tr2.ID, tr1.ID, tr2.ID} {
				Expect(tx.TrackList(ctx).AddEntry(&model.TrackListEntry{TrackListID: tl.ID, TrackID: id})).To(Succeed())
			}
			listID = tl.ID
			t1, t2 = tr1.ID, tr2.ID
		})
		inReadTx(func(tx model.DataStore) {
			entries, err := tx.TrackList(ctx).GetEntries(listID, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(entries.Results).To(HaveLen(3))
			Expect(entries.Results[0].TrackID).To(Equal(t2))
			Expect(entries.Results[1].TrackID).To(Equal(t1))
			Expect(entries.Results[2].TrackID).To(Equal(t2))

			// The tracklist-sorted track listing follows entry order.
			res, err := tx.Track(ctx).Find(model.TrackFindParameters{
				TrackList:  listID,
				SortMethod: model.TrackSortMethodTrackList,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Results).To(HaveLen(3))
			Expect(res.Results[0].ID).To(Equal(t2))
		})
	})

	It("sums the duration of the listed tracks", func() {
		var listID model.TrackListID
		inWriteTx(func(tx model.DataStore) {
			tl := &model.TrackList{Name: "d", UserID: user.ID, LastModified: time.Now()}
			Expect(tx.TrackList(ctx).Put(tl)).To(Succeed())
			for i := 0; i < 3; i++ {
				t := createTrack(tx, fmt.Sprintf("d%d", i), fmt.Sprintf("/dur/%d.flac", i))
				Expect(tx.TrackList(ctx).AddEntry(&model.TrackListEntry{TrackListID: tl.ID, TrackID: t.ID})).To(Succeed())
			}
			listID = tl.ID
		})
		inReadTx(func(tx model.DataStore) {
			d, err := tx.TrackList(ctx).GetDuration(listID)
			Expect(err).ToNot(HaveOccurred())
			Expect(d).To(BeNumerically("~", 540, 0.01))
		})
	})

	It("cascades the list and its entries when the user goes away", func() {
		var listID model.TrackListID
		var trackID model.TrackID
		inWriteTx(func(tx model.DataStore) {
			tr := createTrack(tx, "t", "/tlc.flac")
			tl := &model.TrackList{Name: "c", UserID: user.ID, LastModified: time.Now()}
			Expect(tx.TrackList(ctx).Put(tl)).To(Succeed())
			Expect(tx.TrackList(ctx).AddEntry(&model.TrackListEntry{TrackListID: tl.ID, TrackID: tr.ID})).To(Succeed())
			listID = tl.ID
			trackID = tr.ID
		})
		inWriteTx(func(tx model.DataStore) {
			Expect(tx.User(ctx).Delete(user.ID)).To(Succeed())
		})
		inReadTx(func(tx model.DataStore) {
			_, err := tx.TrackList(ctx).Get(listID)
			Expect(err).To(MatchError(model.ErrNotFound))
			n, err := tx.TrackList(ctx).GetEntryCount(listID)
			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(BeZero())
			// The track itself is untouched.
			_, err = tx.Track(ctx).Get(trackID)
			Expect(err).ToNot(HaveOccurred())
		})
	})

	It("filters by user and type and can skip single-release lists", func() {
		var other *model.User
		inWriteTx(func(tx model.DataStore) {
			other = createUser(tx, "dave")
			rel := createRelease(tx, "only")

			single := &model.TrackList{Name: "single", UserID: user.ID, LastModified: time.Now()}
			Expect(tx.TrackList(ctx).Put(single)).To(Succeed())
			mixed := &model.TrackList{Name: "mixed", UserID: user.ID, LastModified: time.Now()}
			Expect(tx.TrackList(ctx).Put(mixed)).To(Succeed())
			history := &model.TrackList{Name: "history", Type: model.TrackListTypeInternal, UserID: other.ID, LastModified: time.Now()}
			Expect(tx.TrackList(ctx).Put(history)).To(Succeed())

			rel2 := createRelease(tx, "second")
			t1 := createTrack(tx, "s1", "/sr/1.flac")
			t1.ReleaseID = rel.ID
			Expect(tx.Track(ctx).Put(t1)).To(Succeed())
			t2 := createTrack(tx, "s2", "/sr/2.flac")
			t2.ReleaseID = rel2.ID
			Expect(tx.Track(ctx).Put(t2)).To(Succeed())

			Expect(tx.TrackList(ctx).AddEntry(&model.TrackListEntry{TrackListID: single.ID, TrackID: t1.ID})).To(Succeed())
			Expect(tx.TrackList(ctx).AddEntry(&model.TrackListEntry{TrackListID: mixed.ID, TrackID: t1.ID})).To(Succeed())
			Expect(tx.TrackList(ctx).AddEntry(&model.TrackListEntry{TrackListID: mixed.ID, TrackID: t2.ID})).To(Succeed())
		})
		inReadTx(func(tx model.DataStore) {
			playlist := model.TrackListTypePlaylist
			res, err := tx.TrackList(ctx).Find(model.TrackListFindParameters{User: user.ID, Type: &playlist})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Results).To(HaveLen(2))

			res, err = tx.TrackList(ctx).Find(model.TrackListFindParameters{
				User:                   user.ID,
				Type:                   &playlist,
				ExcludeIfSingleRelease: true,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Results).To(HaveLen(1))
			Expect(res.Results[0].Name).To(Equal("mixed"))

			internal := model.TrackListTypeInternal
			res, err = tx.TrackList(ctx).Find(model.TrackListFindParameters{User: other.ID, Type: &internal})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Results).To(HaveLen(1))
		})
	})
})
