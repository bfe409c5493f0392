package post

import (
	"cmp"
	"slices"
)

// CategoryPosts is one category bucket. Posts keep their newest-first order.
type CategoryPosts struct {
	Category string
	Posts    Posts
}

type byCategory []CategoryPosts

func (bc *byCategory) add(c string, p *Post) {
	for i, g := range *bc {
		if g.Category == c {
			g.Posts = append(g.Posts, p)
			(*bc)[i] = g
			return
		}
	}

	group := CategoryPosts{c, make(Posts, 1, 10)}
	group.Posts[0] = p
	*bc = append(*bc, group)
}

// GroupByCategory buckets posts by category, ordered by the number of posts
// per category, then by newest post.
func GroupByCategory(all Posts) []CategoryPosts {
	byCat := make(byCategory, 0, 20)
	for _, p := range all {
		byCat.add(p.Category, p)
	}

	slices.SortFunc(byCat, func(a, b CategoryPosts) int {
		if c := cmp.Compare(len(b.Posts), len(a.Posts)); c != 0 {
			return c
		}
		return b.Posts.latestDate().Compare(a.Posts.latestDate())
	})

	return byCat
}
