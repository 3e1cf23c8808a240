package payload

import (
	"cfmigrate/internal/models"
)

// Update flags sent with every field update.
const (
	fieldType       = ":type"
	fieldNewVersion = ":newVersion"
	fieldCharset    = "_charset_"
)

// FormField is one named value of a form submission.
type FormField struct {
	Name  string
	Value string
}

// Form is an ordered multi-value field set. Repeated names keep their order.
type Form struct {
	fields []FormField
}

// Add appends a value.
func (f *Form) Add(name, value string) {
	f.fields = append(f.fields, FormField{Name: name, Value: value})
}

// AddAll appends every value under the same name.
func (f *Form) AddAll(name string, values []string) {
	for _, v := range values {
		f.Add(name, v)
	}
}

// Get returns the first value for name, or "".
func (f Form) Get(name string) string {
	for _, field := range f.fields {
		if field.Name == name {
			return field.Value
		}
	}

	return ""
}

// Fields returns a copy of the fields in insertion order.
func (f Form) Fields() []FormField {
	out := make([]FormField, len(f.fields))
	copy(out, f.fields)

	return out
}

// Len returns the number of fields.
func (f Form) Len() int {
	return len(f.fields)
}

// EntityKind identifies the content model of an entity.
type EntityKind string

// Entity kinds.
const (
	KindArticle EntityKind = "article"
	KindSection EntityKind = "section"
	KindStory   EntityKind = "story"
)

// Entity is one logical submission: a named fragment and its field set.
type Entity struct {
	Kind EntityKind
	// Name is the fragment name.
	Name string
	// Parent is the owning article slug for sections.
	Parent string
	Fields Form
}

// Banner is the fixed banner submitted with every blog article.
type Banner struct {
	ID    string
	Alt   string
	Title string
	Type  string
}

func updateForm() Form {
	var f Form

	f.Add(fieldType, "multiple")
	f.Add(fieldNewVersion, "false")
	f.Add(fieldCharset, "utf-8")

	return f
}

// ArticleEntity maps an article to its top-level field set.
// blogsection lists the section paths in block order.
func ArticleEntity(article *models.Article, banner Banner) Entity {
	f := updateForm()

	f.Add("slug", article.Slug)
	f.Add("metatitle", article.MetaTitle)
	f.Add("metakeywords", article.MetaKeywords)
	f.Add("metadescription", article.MetaDescription)
	f.Add("title", article.Title)
	f.Add("publishDate", article.PublishDate)
	f.Add("readtime", article.ReadTime)
	f.Add("carddescription", article.CardDescription)
	f.Add("bannerid", banner.ID)
	f.Add("banneralt", banner.Alt)
	f.Add("bannertitle", banner.Title)
	f.Add("bannerType", banner.Type)
	f.Add("blogtags", "")
	f.AddAll("blogsection", article.SectionPaths())
	f.AddAll("searchtags", article.Tags)

	return Entity{Kind: KindArticle, Name: article.Slug, Fields: f}
}

// SectionEntity maps one section of an article.
func SectionEntity(articleSlug string, section models.Section) Entity {
	f := updateForm()

	f.Add("slug", section.Slug)
	f.Add("title", section.HeadingText)
	f.Add("titletype", string(section.HeadingLevel))
	f.Add("description", section.Description)
	f.Add("assetid", section.Image.Src)
	f.Add("assetalt", section.Image.Alt)
	f.Add("assetType", section.Image.FileType)
	f.Add("assettitle", section.Image.Title)

	return Entity{Kind: KindSection, Name: section.Slug, Parent: articleSlug, Fields: f}
}

// StoryEntity maps a success story. The rendered body fills both descriptions.
func StoryEntity(story *models.Story) Entity {
	f := updateForm()

	f.Add("slug", story.Slug)
	f.Add("metatitle", story.MetaTitle)
	f.Add("metakeywords", story.MetaKeywords)
	f.Add("metadescription", story.MetaDescription)
	f.Add("title", story.Title)
	f.Add("designation", story.Education)
	f.Add("location", story.Location)
	f.Add("carddescription", story.Description)
	f.Add("bannerid", story.Banner.Src)
	f.Add("banneralt", story.Banner.Alt)
	f.Add("bannertitle", story.Banner.Title)
	f.Add("bannerType", story.Banner.FileType)
	f.Add("youtubeid", "")
	f.Add("quote", story.Quote)
	f.Add("maindescription", story.Description)

	return Entity{Kind: KindStory, Name: story.Name, Fields: f}
}

// FragmentForm is the command form creating an empty fragment from a model template.
func FragmentForm(parentPath, template, name string) Form {
	var f Form

	f.Add(fieldCharset, "utf-8")
	f.Add("parentPath", parentPath)
	f.Add("template", template)
	f.Add("./jcr:title", name)
	f.Add("description", "")
	f.Add("name", name)

	return f
}

// FolderForm creates a folder node.
func FolderForm(name string) Form {
	var f Form

	f.Add(":name", name)
	f.Add("./jcr:primaryType", "sling:Folder")

	return f
}
