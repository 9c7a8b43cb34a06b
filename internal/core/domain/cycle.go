package domain

// Cycle lengths of the two interacting symbol sets.
const (
	StemCount   = 10
	BranchCount = 12
)

// Normalize maps any integer onto [0, n).
// Go's % keeps the sign of the dividend, so the result is shifted once more.
func Normalize(i, n int) int {
	return ((i % n) + n) % n
}

// Stem is one of the ten Heavenly Stems (天干).
type Stem int

// The ten stems in cycle order.
const (
	StemJia Stem = iota
	StemYi
	StemBing
	StemDing
	StemWu
	StemJi
	StemGeng
	StemXin
	StemRen
	StemGui
)

var stemGlyphs = [StemCount]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

var stemPinyin = [StemCount]string{"Jia", "Yi", "Bing", "Ding", "Wu", "Ji", "Geng", "Xin", "Ren", "Gui"}

// StemAt returns the stem at position i of the cycle. It accepts any integer.
func StemAt(i int) Stem {
	return Stem(Normalize(i, StemCount))
}

// Index returns the zero-based ordinal of the stem.
func (s Stem) Index() int {
	return Normalize(int(s), StemCount)
}

// Name returns the display glyph.
func (s Stem) Name() string {
	return stemGlyphs[s.Index()]
}

// Pinyin returns the romanised name.
func (s Stem) Pinyin() string {
	return stemPinyin[s.Index()]
}

// String returns the display glyph.
func (s Stem) String() string {
	return s.Name()
}

// IsYang reports whether the stem has an even ordinal.
func (s Stem) IsYang() bool {
	return s.Index()%2 == 0
}


// Branch is one of the twelve Earthly Branches (地支).
type Branch int

// The twelve branches in cycle order.
const (
	BranchZi Branch = iota
	BranchChou
	BranchYin
	BranchMao
	BranchChen
	BranchSi
	BranchWu
	BranchWei
	BranchShen
	BranchYou
	BranchXu
	BranchHai
)

var branchGlyphs = [BranchCount]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

var branchPinyin = [BranchCount]string{
	"Zi", "Chou", "Yin", "Mao", "Chen", "Si", "Wu", "Wei", "Shen", "You", "Xu", "Hai",
}

// shiChenSuffix marks a branch used as a two-hour period name.
const shiChenSuffix = "时"

// BranchAt returns the branch at position i of the cycle. It accepts any integer.
func BranchAt(i int) Branch {
	return Branch(Normalize(i, BranchCount))
}

// Index returns the zero-based ordinal of the branch.
func (b Branch) Index() int {
	return Normalize(int(b), BranchCount)
}

// Name returns the display glyph.
func (b Branch) Name() string {
	return branchGlyphs[b.Index()]
}

// Pinyin returns the romanised name.
func (b Branch) Pinyin() string {
	return branchPinyin[b.Index()]
}

// ShiChen returns the two-hour period name, e.g. "子时".
func (b Branch) ShiChen() string {
	return b.Name() + shiChenSuffix
}

// String returns the display glyph.
func (b Branch) String() string {
	return b.Name()
}
