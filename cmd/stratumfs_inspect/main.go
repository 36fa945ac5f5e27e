package main

import (
	"context"
	"fmt"
	"time"

	"github.com/buildbarn/bb-storage/pkg/filesystem"
	"github.com/buildbarn/bb-storage/pkg/program"
	"github.com/buildbarn/bb-storage/pkg/random"
	"github.com/buildbarn/bb-storage/pkg/util"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"github.com/stratumfs/stratumfs/pkg/union"
	"github.com/stratumfs/stratumfs/pkg/union/local"

	"golang.org/x/sys/unix"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// stratumfs_inspect resolves a single logical node from a set of layer
// paths and prints the attributes that the union view would report for
// it. It is a diagnostic tool for inspecting existing layer material
// without setting up a full mount.
func main() {
	var (
		upperPath      = pflag.String("upper", "", "Path of the object in the writable layer, if any")
		lowerPath      = pflag.String("lower", "", "Path of the origin object in a read-only layer, if any")
		indexPath      = pflag.String("index", "", "Path of the object in the index area, if any")
		sameFilesystem = pflag.Bool("same-filesystem", true, "Whether all layers share a single underlying file system")
		hasIndex       = pflag.Bool("indexed", false, "Whether the mount carries an index directory")
		export         = pflag.Bool("export", false, "Whether file handle export is enabled")
	)
	program.RunMain(func(ctx context.Context, siblingsGroup, dependenciesGroup program.Group) error {
		pflag.Parse()
		if *upperPath == "" && *lowerPath == "" {
			return status.Error(codes.InvalidArgument, "At least one of --upper and --lower must be provided")
		}

		objectFromPath := func(path string) (union.Object, error) {
			if path == "" {
				return nil, nil
			}
			return local.NewObject(path)
		}
		upper, err := objectFromPath(*upperPath)
		if err != nil {
			return util.StatusWrap(err, "Failed to open writable layer object")
		}
		lower, err := objectFromPath(*lowerPath)
		if err != nil {
			return util.StatusWrap(err, "Failed to open read-only layer object")
		}
		index, err := objectFromPath(*indexPath)
		if err != nil {
			return util.StatusWrap(err, "Failed to open index object")
		}

		mount := union.NewMount(&union.MountOptions{
			DeviceNumber:       filesystem.NewDeviceNumberFromRaw(0),
			UUID:               uuid.New(),
			MounterCredentials: union.NewCredentials(uint32(unix.Geteuid()), uint32(unix.Getegid()), 0),
			HasWritableLayer:   *upperPath != "",
			HasIndexDirectory:  *hasIndex,
			SameFilesystem:     *sameFilesystem,
			ExportEnabled:      *export,
		})
		table := union.NewNodeTable(
			mount,
			union.NewReadOnlyCopyUpEngine(),
			random.FastThreadSafeGenerator,
			util.DefaultErrorLogger)

		node, s := table.GetNode(upper, lower, index)
		if s != union.StatusOK {
			return status.Errorf(codes.Internal, "Failed to resolve node: status %d", s)
		}
		defer node.Release()

		var attributes union.Attributes
		if s := node.GetAttributes(
			ctx,
			union.AttributesMaskDeviceNumber|
				union.AttributesMaskFileType|
				union.AttributesMaskInodeNumber|
				union.AttributesMaskLastDataModificationTime|
				union.AttributesMaskLinkCount|
				union.AttributesMaskMode|
				union.AttributesMaskOwnerGroupID|
				union.AttributesMaskOwnerUserID|
				union.AttributesMaskSizeBytes,
			&attributes); s != union.StatusOK {
			return status.Errorf(codes.Internal, "Failed to get attributes: status %d", s)
		}

		if deviceNumber, ok := attributes.GetDeviceNumber(); ok {
			major, minor := deviceNumber.ToMajorMinor()
			fmt.Printf("Device:       %d:%d\n", major, minor)
		}
		fmt.Printf("Inode:        %d\n", attributes.GetInodeNumber())
		fmt.Printf("File type:    %v\n", attributes.GetFileType())
		fmt.Printf("Link count:   %d\n", attributes.GetLinkCount())
		if mode, ok := attributes.GetMode(); ok {
			fmt.Printf("Mode:         %#o\n", mode.ToRaw())
		}
		if ownerUserID, ok := attributes.GetOwnerUserID(); ok {
			fmt.Printf("Owner user:   %d\n", ownerUserID)
		}
		if ownerGroupID, ok := attributes.GetOwnerGroupID(); ok {
			fmt.Printf("Owner group:  %d\n", ownerGroupID)
		}
		if sizeBytes, ok := attributes.GetSizeBytes(); ok {
			fmt.Printf("Size:         %d\n", sizeBytes)
		}
		if lastDataModificationTime, ok := attributes.GetLastDataModificationTime(); ok {
			fmt.Printf("Modified:     %s\n", lastDataModificationTime.Format(time.RFC3339Nano))
		}
		fmt.Printf("Impure:       %t\n", node.IsImpure())
		fmt.Printf("Indexed:      %t\n", node.IsIndexed())

		if *export {
			if fileHandle, s := table.EncodeFileHandle(node); s == union.StatusOK {
				fmt.Printf("File handle:  %x\n", fileHandle)
			}
		}
		return nil
	})
}
