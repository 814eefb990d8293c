package persistence

import (
	"fmt"
	"strings"

	. "github.com/Masterminds/squirrel"

	"github.com/melisma/melisma/model"
)

func idArgs[T ~int64](ids []T) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = int64(id)
	}
	return args
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// clusterIntersection returns "<idColumn> IN (...)" selecting rows related
// to ALL of the given clusters. The HAVING count equals the cluster set
// size, so partial matches never qualify.
//
// fromClause joins down to track_cluster and exposes the grouped id as
// "gid"; see the per-entity callers.
func clusterIntersection(idColumn, fromClause string, clusters []model.ClusterID) Sqlizer {
	sub := fmt.Sprintf(
		"%s IN (SELECT %s WHERE tc.cluster_id IN (%s) GROUP BY gid HAVING COUNT(DISTINCT tc.cluster_id) = %d)",
		idColumn, fromClause, placeholders(len(clusters)), len(clusters))
	return Expr(sub, idArgs(clusters)...)
}

func trackClusterFilter(clusters []model.ClusterID) Sqlizer {
	return clusterIntersection("track.id",
		"tc.track_id as gid FROM track_cluster tc", clusters)
}

func releaseClusterFilter(clusters []model.ClusterID) Sqlizer {
	return clusterIntersection("release.id",
		"t.release_id as gid FROM track t JOIN track_cluster tc ON tc.track_id = t.id", clusters)
}

func artistClusterFilter(clusters []model.ClusterID) Sqlizer {
	return clusterIntersection("artist.id",
		"tal.artist_id as gid FROM track_artist_link tal JOIN track_cluster tc ON tc.track_id = tal.track_id", clusters)
}

// starredFilter restricts to rows starred by the user, optionally for one
// backend.
func starredFilter(idColumn, starredTable, starredFK string, user model.UserID, backend *model.FeedbackBackend) Sqlizer {
	cond := And{Eq{"s.user_id": int64(user)}}
	if backend != nil {
		cond = append(cond, Eq{"s.backend": int(*backend)})
	}
	where, args, _ := cond.ToSql()
	sub := fmt.Sprintf("%s IN (SELECT s.%s FROM %s s WHERE %s)", idColumn, starredFK, starredTable, where)
	return Expr(sub, args...)
}

// artistLinkFilter restricts to rows linked to the artist (by id or raw
// name), optionally through specific link types.
func artistLinkFilter(idColumn string, artist model.ArtistID, artistName string, linkTypes []model.TrackArtistLinkType) Sqlizer {
	cond := And{}
	if artist.IsValid() {
		cond = append(cond, Eq{"tal.artist_id": int64(artist)})
	}
	if artistName != "" {
		cond = append(cond, Eq{"tal.artist_name": artistName})
	}
	if len(linkTypes) > 0 {
		types := make([]int, len(linkTypes))
		for i, t := range linkTypes {
			types[i] = int(t)
		}
		cond = append(cond, Eq{"tal.type": types})
	}
	where, args, _ := cond.ToSql()
	sub := fmt.Sprintf("%s IN (SELECT tal.track_id FROM track_artist_link tal WHERE %s)", idColumn, where)
	return Expr(sub, args...)
}
