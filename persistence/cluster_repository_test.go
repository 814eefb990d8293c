package persistence

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/melisma/melisma/model"
)

var _ = Describe("ClusterRepository", func() {
	BeforeEach(resetDB)

	It("enforces (type, name) uniqueness", func() {
		inWriteTx(func(tx model.DataStore) {
			c := createCluster(tx, "genre", "rock")
			dup := &model.Cluster{TypeID: c.TypeID, Name: "rock"}
			Expect(tx.Cluster(ctx).Put(dup)).To(MatchError(model.ErrIntegrityViolation))

			// Same name under another type is fine.
			other := createCluster(tx, "mood", "rock")
			Expect(other.ID.IsValid()).To(BeTrue())
		})
	})

	It("looks up by (type, name)", func() {
		var typeID model.ClusterTypeID
		inWriteTx(func(tx model.DataStore) {
			c := createCluster(tx, "genre", "jazz")
			typeID = c.TypeID
		})
		inReadTx(func(tx model.DataStore) {
			c, err := tx.Cluster(ctx).GetByName(typeID, "jazz")
			Expect(err).ToNot(HaveOccurred())
			Expect(c.Name).To(Equal("jazz"))
			_, err = tx.Cluster(ctx).GetByName(typeID, "polka")
			Expect(err).To(MatchError(model.ErrNotFound))
		})
	})

	It("lists clusters of a track and counts tracks of a cluster", func() {
		var cl *model.Cluster
		var tr *model.Track
		inWriteTx(func(tx model.DataStore) {
			cl = createCluster(tx, "genre", "rock")
			tr = createTrack(tx, "T", "/c.flac")
			Expect(tx.Track(ctx).SetClusters(tr.ID, []model.ClusterID{cl.ID})).To(Succeed())
		})
		inReadTx(func(tx model.DataStore) {
			got, err := tx.Track(ctx).GetClusters(tr.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(got).To(HaveLen(1))
			Expect(got[0].ID).To(Equal(cl.ID))

			n, err := tx.Cluster(ctx).GetTrackCount(cl.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(Equal(int64(1)))
		})
	})

	Describe("orphan collection", func() {
		It("removes clusters and their types after the last track is deleted", func() {
			var trackID model.TrackID
			inWriteTx(func(tx model.DataStore) {
				cl := createCluster(tx, "genre", "rock")
				tr := createTrack(tx, "T", "/g.flac")
				Expect(tx.Track(ctx).SetClusters(tr.ID, []model.ClusterID{cl.ID})).To(Succeed())
				trackID = tr.ID
			})
			inWriteTx(func(tx model.DataStore) {
				Expect(tx.Track(ctx).Delete(trackID)).To(Succeed())
			})
			Expect(ds.GC(ctx)).To(Succeed())
			inReadTx(func(tx model.DataStore) {
				nClusters, err := tx.Cluster(ctx).CountAll()
				Expect(err).ToNot(HaveOccurred())
				Expect(nClusters).To(BeZero())
				nTypes, err := tx.ClusterType(ctx).CountAll()
				Expect(err).ToNot(HaveOccurred())
				Expect(nTypes).To(BeZero())
			})
		})
	})
})
