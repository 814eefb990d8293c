package persistence

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/melisma/melisma/model"
	"github.com/melisma/melisma/model/id"
)

var _ = Describe("AuthTokenRepository", func() {
	BeforeEach(resetDB)

	var user *model.User

	BeforeEach(func() {
		inWriteTx(func(tx model.DataStore) {
			user = createUser(tx, "erin")
		})
	})

	It("creates, finds by value and consumes tokens", func() {
		value := id.NewRandom()
		inWriteTx(func(tx model.DataStore) {
			t := &model.AuthToken{Value: value, Expiry: time.Now().Add(time.Hour), UserID: user.ID}
			Expect(tx.AuthToken(ctx).Put(t)).To(Succeed())
		})
		inWriteTx(func(tx model.DataStore) {
			t, err := tx.AuthToken(ctx).GetByValue(value)
			Expect(err).ToNot(HaveOccurred())
			Expect(t.UserID).To(Equal(user.ID))
			Expect(tx.AuthToken(ctx).Delete(t.ID)).To(Succeed())
		})
		inReadTx(func(tx model.DataStore) {
			_, err := tx.AuthToken(ctx).GetByValue(value)
			Expect(err).To(MatchError(model.ErrNotFound))
		})
	})

	It("surfaces duplicate token values as integrity violations", func() {
		value := id.NewRandom()
		inWriteTx(func(tx model.DataStore) {
			Expect(tx.AuthToken(ctx).Put(&model.AuthToken{Value: value, Expiry: time.Now().Add(time.Hour), UserID: user.ID})).To(Succeed())
			err := tx.AuthToken(ctx).Put(&model.AuthToken{Value: value, Expiry: time.Now().Add(time.Hour), UserID: user.ID})
			Expect(err).To(MatchError(model.ErrIntegrityViolation))
		})
	})

	It("sweeps expired tokens", func() {
		now := time.Now()
		inWriteTx(func(tx model.DataStore) {
			Expect(tx.AuthToken(ctx).Put(&model.AuthToken{Value: id.NewRandom(), Expiry: now.Add(-time.Minute), UserID: user.ID})).To(Succeed())
			Expect(tx.AuthToken(ctx).Put(&model.AuthToken{Value: id.NewRandom(), Expiry: now.Add(time.Hour), UserID: user.ID})).To(Succeed())
		})
		inWriteTx(func(tx model.DataStore) {
			c, err := tx.AuthToken(ctx).DeleteExpired(now)
			Expect(err).ToNot(HaveOccurred())
			Expect(c).To(Equal(int64(1)))
		})
		inReadTx(func(tx model.DataStore) {
			tokens, err := tx.AuthToken(ctx).GetByUser(user.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(tokens).To(HaveLen(1))
		})
	})

	It("cascades with the user", func() {
		inWriteTx(func(tx model.DataStore) {
			Expect(tx.AuthToken(ctx).Put(&model.AuthToken{Value: id.NewRandom(), Expiry: time.Now().Add(time.Hour), UserID: user.ID})).To(Succeed())
		})
		inWriteTx(func(tx model.DataStore) {
			Expect(tx.User(ctx).Delete(user.ID)).To(Succeed())
		})
		inReadTx(func(tx model.DataStore) {
			tokens, err := tx.AuthToken(ctx).GetByUser(user.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(tokens).To(BeEmpty())
		})
	})
})
