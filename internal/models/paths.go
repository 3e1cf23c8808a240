package models

// Repository folders relative to the asset root.
const (
	BlogsFolder        = "article-blogs/blogs"
	BlogSectionsFolder = "article-blogs/blog-sections"
	StoriesFolder      = "success-stories"
)

// BlogSectionFolder is the folder holding the sections of one article.
func BlogSectionFolder(articleSlug string) string {
	return "/" + BlogSectionsFolder + "/" + articleSlug
}

// BlogSectionPath is the structural path of a section below the asset root.
func BlogSectionPath(articleSlug, sectionSlug string) string {
	return BlogSectionFolder(articleSlug) + "/" + sectionSlug
}

// StoryPath is the structural path of a success story below the asset root.
func StoryPath(name string) string {
	return "/" + StoriesFolder + "/" + name
}
