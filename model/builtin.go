package model

// Constructors for the built-in Evergreen commands that show up in practice.
// They are conveniences only: any built-in command can be expressed directly
// with BuiltIn and a params mapping.

// ShellExec returns a shell.exec command running the given script.
func ShellExec(script string) Command {
	return BuiltIn("shell.exec", Mapping{}.Set("script", StringValue(script)))
}

// SubprocessExec returns a subprocess.exec command running the given binary.
func SubprocessExec(binary string, args ...string) Command {
	params := Mapping{}.Set("binary", StringValue(binary))
	if len(args) > 0 {
		items := make([]Value, len(args))
		for i, arg := range args {
			items[i] = StringValue(arg)
		}
		params = params.Set("args", ListValue(items...))
	}
	return BuiltIn("subprocess.exec", params)
}

// GitGetProject returns a git.get_project command cloning into directory.
func GitGetProject(directory string) Command {
	return BuiltIn("git.get_project", Mapping{}.Set("directory", StringValue(directory)))
}

// S3Put returns an s3.put command uploading localFile to the given bucket.
func S3Put(localFile, remoteFile, bucket string) Command {
	params := Mapping{}.
		Set("local_file", StringValue(localFile)).
		Set("remote_file", StringValue(remoteFile)).
		Set("bucket", StringValue(bucket))
	return BuiltIn("s3.put", params)
}

// S3Get returns an s3.get command downloading remoteFile to localFile.
func S3Get(remoteFile, localFile, bucket string) Command {
	params := Mapping{}.
		Set("remote_file", StringValue(remoteFile)).
		Set("local_file", StringValue(localFile)).
		Set("bucket", StringValue(bucket))
	return BuiltIn("s3.get", params)
}

// ArchiveTargzPack returns an archive.targz_pack command creating target
// from the include globs under sourceDir.
func ArchiveTargzPack(target, sourceDir string, include ...string) Command {
	items := make([]Value, len(include))
	for i, glob := range include {
		items[i] = StringValue(glob)
	}
	params := Mapping{}.
		Set("target", StringValue(target)).
		Set("source_dir", StringValue(sourceDir)).
		Set("include", ListValue(items...))
	return BuiltIn("archive.targz_pack", params)
}

// ArchiveTargzExtract returns an archive.targz_extract command unpacking
// path into destination.
func ArchiveTargzExtract(path, destination string) Command {
	params := Mapping{}.
		Set("path", StringValue(path)).
		Set("destination", StringValue(destination))
	return BuiltIn("archive.targz_extract", params)
}

// AttachResults returns an attach.results command for the given result file.
func AttachResults(fileLocation string) Command {
	return BuiltIn("attach.results", Mapping{}.Set("file_location", StringValue(fileLocation)))
}

// AttachXUnitResults returns an attach.xunit_results command for the given
// xunit file globs.
func AttachXUnitResults(files ...string) Command {
	items := make([]Value, len(files))
	for i, f := range files {
		items[i] = StringValue(f)
	}
	return BuiltIn("attach.xunit_results", Mapping{}.Set("files", ListValue(items...)))
}

// ExpansionsUpdate returns an expansions.update command applying the given
// key/value updates.
func ExpansionsUpdate(updates Mapping) Command {
	items := make([]Value, len(updates))
	for i, f := range updates {
		items[i] = MapValue(
			Field{Key: "key", Value: StringValue(f.Key)},
			Field{Key: "value", Value: f.Value},
		)
	}
	return BuiltIn("expansions.update", Mapping{}.Set("updates", ListValue(items...)))
}

// ExpansionsWrite returns an expansions.write command writing the task's
// expansions to file.
func ExpansionsWrite(file string) Command {
	return BuiltIn("expansions.write", Mapping{}.Set("file", StringValue(file)))
}

// GenerateTasks returns a generate.tasks command reading the given json files.
func GenerateTasks(files ...string) Command {
	items := make([]Value, len(files))
	for i, f := range files {
		items[i] = StringValue(f)
	}
	return BuiltIn("generate.tasks", Mapping{}.Set("files", ListValue(items...)))
}

// TimeoutUpdate returns a timeout.update command setting the task timeouts.
// A zero timeout is left unset.
func TimeoutUpdate(execTimeoutSecs, timeoutSecs int64) Command {
	var params Mapping
	if execTimeoutSecs != 0 {
		params = params.Set("exec_timeout_secs", IntValue(execTimeoutSecs))
	}
	if timeoutSecs != 0 {
		params = params.Set("timeout_secs", IntValue(timeoutSecs))
	}
	return BuiltIn("timeout.update", params)
}

// ManifestLoad returns a manifest.load command.
func ManifestLoad() Command {
	return BuiltIn("manifest.load", nil)
}
