package medianame

// VideoExtensions lists the file extensions importable as library items.
var VideoExtensions = []string{
	".mp4", ".mkv", ".avi", ".mov", ".wmv", ".flv", ".m4v",
	".mpg", ".mpeg", ".webm", ".bdmv", ".m2ts",
}

var videoExtensionSet = func() map[string]bool {
	m := make(map[string]bool, len(VideoExtensions))
	for _, ext := range VideoExtensions {
		m[ext] = true
	}
	return m
}()

// IsVideoFile reports whether path has a video extension. Of the Blu-ray
// ".bdmv" files only BDMV/MovieObject.bdmv counts, standing in for the disc.
func IsVideoFile(path string) bool {
	_, ext := splitExt(baseName(path))
	ext = lower(ext)
	if ext == ".bdmv" {
		return IsBDMVMovieObject(path)
	}
	return videoExtensionSet[ext]
}

// IsBDMVMovieObject reports whether path is the MovieObject.bdmv file of a
// Blu-ray folder structure.
func IsBDMVMovieObject(path string) bool {
	return lower(baseName(path)) == "movieobject.bdmv" && lower(baseName(dirName(path))) == "bdmv"
}

// DefaultDisplayTitle is the file stem, or for a Blu-ray folder structure the
// name of the folder holding BDMV.
func DefaultDisplayTitle(path string) string {
	if IsBDMVMovieObject(path) {
		if disc := baseName(dirName(dirName(path))); disc != "" {
			return disc
		}
		return baseName(path)
	}
	return fileStem(path)
}
